package accounts

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authsvc/internal/authctx"
	apperrors "github.com/skillsenselab/authsvc/internal/errors"
	"github.com/skillsenselab/authsvc/internal/server"
	"github.com/skillsenselab/authsvc/internal/taskpool"
	"github.com/skillsenselab/authsvc/internal/validation"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Handler exposes the account use-cases over HTTP. Hashing and store access
// run on the shared worker pool, never on the request goroutine.
type Handler struct {
	svc  *Service
	pool *taskpool.Pool
}

// NewHandler creates the accounts HTTP handler.
func NewHandler(svc *Service, pool *taskpool.Pool) *Handler {
	return &Handler{svc: svc, pool: pool}
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("Invalid request body"))
		return
	}
	if err := validation.Struct(&req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	if !validation.IsEmail(req.Email) {
		server.RespondWithError(c, apperrors.InvalidFormat("email", "a valid email address"))
		return
	}

	ctx := c.Request.Context()
	account, err := taskpool.Do(ctx, h.pool, func() (*Account, error) {
		return h.svc.Register(ctx, req.Email, req.Password, req.FullName)
	})
	if err != nil {
		server.RespondWithError(c, mapPoolError(err))
		return
	}

	server.RespondOK(c, "Registered successfully", account)
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("Invalid request body"))
		return
	}
	if err := validation.Struct(&req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	session, err := taskpool.Do(ctx, h.pool, func() (*Session, error) {
		return h.svc.Login(ctx, req.Email, req.Password)
	})
	if err != nil {
		server.RespondWithError(c, mapPoolError(err))
		return
	}

	server.RespondOK(c, "Logged in successfully", session)
}

// Profile handles GET /profile. The gate middleware has already verified the
// token and attached the identity to the request context.
func (h *Handler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	identity, ok := authctx.Get[authctx.Identity](ctx)
	if !ok {
		server.RespondWithError(c, apperrors.InvalidToken())
		return
	}

	account, err := taskpool.Do(ctx, h.pool, func() (*Account, error) {
		return h.svc.Profile(ctx, identity.Email)
	})
	if err != nil {
		server.RespondWithError(c, mapPoolError(err))
		return
	}

	server.RespondOK(c, "Get profile success", account)
}

// mapPoolError hides pool-level failures behind the generic internal error;
// service errors pass through unchanged.
func mapPoolError(err error) error {
	if errors.Is(err, taskpool.ErrCanceled) || errors.Is(err, taskpool.ErrClosed) {
		return apperrors.Internal(err)
	}
	return err
}
