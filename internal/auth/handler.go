package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/grievance-management/internal"
	"github.com/frahmantamala/grievance-management/internal/transport"
	"github.com/frahmantamala/grievance-management/pkg/logger"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, token, err := h.Service.Register(dto)
	if err != nil {
		h.Logger.Error("registration failed", "error", err, "email", dto.Email)

		switch err {
		case ErrEmailTaken:
			h.HandleError(w, internal.ErrEmailTaken)
		default:
			if _, ok := err.(ValidationError); ok {
				h.HandleError(w, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed))
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    u,
		"token":   token,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, token, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)

		switch err {
		case ErrInvalidCredentials:
			h.HandleError(w, internal.ErrInvalidCredentials)
		default:
			if _, ok := err.(ValidationError); ok {
				h.HandleError(w, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed))
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    u,
		"token":   token,
	})
}

// ForgotPassword replaces the password for the user named in the path.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	var dto ResetPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ResetPassword(userID, dto); err != nil {
		switch err {
		case ErrUserNotFound:
			h.HandleError(w, internal.ErrUserNotFound)
		default:
			if _, ok := err.(ValidationError); ok {
				h.HandleError(w, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed))
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

// AuthMiddleware is the access gate. It distinguishes four failure modes:
// missing token, expired token, invalid token, and a token whose subject no
// longer exists in the store (user deleted after issuance).
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.HandleError(w, internal.ErrTokenMissing)
			return
		}

		claims, err := h.Service.ValidateToken(token)
		if err != nil {
			switch err {
			case ErrTokenExpired:
				h.HandleError(w, internal.ErrTokenExpired)
			default:
				h.HandleError(w, internal.ErrInvalidToken)
			}
			return
		}

		u, err := h.Service.GetUserByID(claims.UserID)
		if err != nil || u == nil {
			h.Logger.Warn("token subject not found", "user_id", claims.UserID)
			h.HandleError(w, internal.ErrUserNotFound)
			return
		}

		ctx := internal.ContextWithUser(r.Context(), u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
