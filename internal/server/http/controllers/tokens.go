package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/midani-47/Message-Queues/internal/auth"
)

// TokensController issues access tokens for the broker's static user table.
type TokensController struct {
	auth *auth.Manager
}

// NewTokensController creates a new tokens controller.
func NewTokensController(mgr *auth.Manager) *TokensController {
	return &TokensController{auth: mgr}
}

// RegisterRoutes registers the token endpoint with the given engine.
func (c *TokensController) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/token", c.handleToken)
}

// handleToken exchanges a username/password pair for a signed bearer token.
//
// Credentials arrive as a JSON body; query parameters are accepted as a
// fallback for curl-style callers. Returns 401 on unknown user or wrong
// password, without distinguishing the two.
func (c *TokensController) handleToken(ctx *gin.Context) {
	var req tokenReq
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	if req.Username == "" {
		req.Username = ctx.Query("username")
		req.Password = ctx.Query("password")
	}

	token, expires, err := c.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	ctx.JSON(http.StatusOK, tokenResp{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expires,
	})
}
