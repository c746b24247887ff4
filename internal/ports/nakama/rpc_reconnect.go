package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"fivetenking/internal/app"
)

const reconnectTokenTTL = time.Hour

// reconnectServiceFromEnv builds the token service from runtime env vars.
// The dev default keeps local setups working; production must set the
// secret.
func reconnectServiceFromEnv(ctx context.Context) *app.ReconnectService {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["fivetenking_reconnect_secret"]
	issuer := env["fivetenking_reconnect_issuer"]
	if secret == "" {
		secret = "dev-reconnect-secret"
	}
	if issuer == "" {
		issuer = MatchLabelGame
	}
	return app.NewReconnectService(secret, issuer, reconnectTokenTTL)
}

// ReconnectTokenResponse carries a signed seat reclaim token.
type ReconnectTokenResponse struct {
	Token string `json:"token"`
}

// rpcReconnectToken issues a reclaim token binding the calling user to a
// match. Payload: {"match_id": "..."}.
func rpcReconnectToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("Authentication required", 16) // UNAUTHENTICATED
	}

	var req struct {
		MatchID string `json:"match_id"`
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
	}
	if req.MatchID == "" {
		return "", runtime.NewError("match_id required", 3)
	}

	token, err := reconnectServiceFromEnv(ctx).IssueToken(req.MatchID, userID)
	if err != nil {
		logger.Error("Failed to issue reconnect token: %v", err)
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}

	res := ReconnectTokenResponse{Token: token}
	resBytes, _ := json.Marshal(res)
	return string(resBytes), nil
}
