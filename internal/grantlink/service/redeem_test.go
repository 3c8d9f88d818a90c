package service

import (
	"context"
	"testing"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/domain"
	"github.com/grantlink/grantlink/internal/grantlink/store"
	"github.com/grantlink/grantlink/pkg/idx"
	"github.com/grantlink/grantlink/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type redeemEnv struct {
	tokens   *TokenService
	redeem   *RedeemService
	sessions *SessionService
}

func newRedeemEnv(t *testing.T) *redeemEnv {
	t.Helper()

	st := newTestStore(t)
	codec := newTestCodec(t)

	sessions := &SessionService{Store: st, TTL: time.Hour}
	return &redeemEnv{
		tokens: &TokenService{
			Store:          st,
			Codec:          codec,
			DefaultMaxUses: 1,
			SessionTTL:     15 * time.Minute,
		},
		redeem: &RedeemService{
			Store:    st,
			Codec:    codec,
			Sessions: sessions,
		},
		sessions: sessions,
	}
}

func TestRedeemValidateAndConsume(t *testing.T) {
	t.Parallel()

	env := newRedeemEnv(t)
	ctx := context.Background()

	token, err := env.tokens.Issue(ctx, domain.TokenParams{
		Scope:   "unsubscribe",
		MaxUses: 2,
	})
	require.NoError(t, err)

	redemption, err := env.redeem.Validate(ctx, token.Encoded, "/v1/redeem/unsubscribe", "")
	require.NoError(t, err)
	require.Equal(t, domain.EffectNone, redemption.Effect)
	require.Equal(t, token.ID, redemption.Token.ID)
	require.Nil(t, redemption.Session)

	require.NoError(t, env.redeem.Consume(ctx, token.ID))
	require.NoError(t, env.redeem.Consume(ctx, token.ID))
	require.ErrorIs(t, env.redeem.Consume(ctx, token.ID), domain.ErrMaxUses)

	// The advisory pre-flight now sees the exhausted count too.
	_, err = env.redeem.Validate(ctx, token.Encoded, "/v1/redeem/unsubscribe", "")
	require.ErrorIs(t, err, domain.ErrMaxUses)
}

func TestRedeemValidateGarbage(t *testing.T) {
	t.Parallel()

	env := newRedeemEnv(t)
	ctx := context.Background()

	for _, raw := range []string{"", "not-a-token", "a.b", "ZZZZ.!!!.??"} {
		_, err := env.redeem.Validate(ctx, raw, "/", "")
		require.ErrorIs(t, err, domain.ErrTokenDecode, "input %q", raw)
	}
}

func TestRedeemValidateUnknownRecord(t *testing.T) {
	t.Parallel()

	env := newRedeemEnv(t)

	// Correctly signed claims whose jti has no backing row: the signature
	// alone must never be enough.
	claims := jwtx.NewGrantClaims(idx.New().String(), "ghost", "", 0, 1, time.Now().UTC(), nil, nil)
	raw, err := env.redeem.Codec.Encode(claims)
	require.NoError(t, err)

	_, err = env.redeem.Validate(context.Background(), raw, "/", "")
	require.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestRedeemValidateExpired(t *testing.T) {
	t.Parallel()

	env := newRedeemEnv(t)
	ctx := context.Background()

	token, err := env.tokens.Issue(ctx, domain.TokenParams{Scope: "download"})
	require.NoError(t, err)

	_, err = env.tokens.Expire(ctx, token.ID.String())
	require.NoError(t, err)

	_, err = env.redeem.Validate(ctx, token.Encoded, "/", "")
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestRedeemValidateTarget(t *testing.T) {
	t.Parallel()

	env := newRedeemEnv(t)
	ctx := context.Background()

	token, err := env.tokens.Issue(ctx, domain.TokenParams{
		Scope:  "download",
		Target: "/v1/redeem/download",
	})
	require.NoError(t, err)

	_, err = env.redeem.Validate(ctx, token.Encoded, "/v1/redeem/other", "")
	require.ErrorIs(t, err, domain.ErrTargetMismatch)

	_, err = env.redeem.Validate(ctx, token.Encoded, "/v1/redeem/download", "")
	require.NoError(t, err)
}

func TestRedeemValidateRequestMode(t *testing.T) {
	t.Parallel()

	env := newRedeemEnv(t)
	ctx := context.Background()

	token, err := env.tokens.Issue(ctx, domain.TokenParams{
		Scope:     "approve",
		LoginMode: domain.LoginModeRequest,
		Identity:  "alice",
		MaxUses:   5,
	})
	require.NoError(t, err)

	redemption, err := env.redeem.Validate(ctx, token.Encoded, "/", "")
	require.NoError(t, err)
	require.Equal(t, domain.EffectBindRequest, redemption.Effect)

	// Already authenticated as the bound identity: fine.
	_, err = env.redeem.Validate(ctx, token.Encoded, "/", "alice")
	require.NoError(t, err)

	// Authenticated as someone else: hard rejection, never last-writer-wins.
	_, err = env.redeem.Validate(ctx, token.Encoded, "/", "mallory")
	require.ErrorIs(t, err, domain.ErrIdentityMismatch)
}

func TestRedeemValidateSessionMode(t *testing.T) {
	t.Parallel()

	env := newRedeemEnv(t)
	ctx := context.Background()

	token, err := env.tokens.Issue(ctx, domain.TokenParams{
		Scope:     "login",
		LoginMode: domain.LoginModeSession,
		Identity:  "bob",
	})
	require.NoError(t, err)

	redemption, err := env.redeem.Validate(ctx, token.Encoded, "/", "")
	require.NoError(t, err)
	require.Equal(t, domain.EffectEstablishSession, redemption.Effect)
	require.NotNil(t, redemption.Session)
	require.Equal(t, "bob", redemption.Session.Identity)
	require.NotEmpty(t, redemption.SessionCookie)

	// The returned cookie resolves back to the session it created.
	resolved, err := env.sessions.Resolve(ctx, redemption.SessionCookie)
	require.NoError(t, err)
	require.Equal(t, redemption.Session.ID, resolved.ID)

	// Session tokens are single-use: once consumed they never validate again.
	require.NoError(t, env.redeem.Consume(ctx, token.ID))
	_, err = env.redeem.Validate(ctx, token.Encoded, "/", "")
	require.ErrorIs(t, err, domain.ErrMaxUses)
}

func TestRedeemConsumeUnknown(t *testing.T) {
	t.Parallel()

	env := newRedeemEnv(t)

	err := env.redeem.Consume(context.Background(), idx.New())
	require.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestSessionServiceLifecycle(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := &SessionService{Store: st, TTL: time.Hour}
	ctx := context.Background()

	session, cookie, err := svc.Establish(ctx, "carol")
	require.NoError(t, err)
	require.NotEmpty(t, cookie)
	require.NotEqual(t, cookie, session.TokenFingerprint, "raw cookie value is never stored")

	resolved, err := svc.Resolve(ctx, cookie)
	require.NoError(t, err)
	require.Equal(t, "carol", resolved.Identity)

	_, err = svc.Resolve(ctx, "wrong-cookie")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Resolve(ctx, "")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, svc.Destroy(ctx, session.ID))
	_, err = svc.Resolve(ctx, cookie)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Destroy is idempotent.
	require.NoError(t, svc.Destroy(ctx, session.ID))
}

func TestSessionServiceResolveExpired(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	svc := &SessionService{Store: st, TTL: time.Hour}
	ctx := context.Background()

	_, cookie, err := svc.Establish(ctx, "dave")
	require.NoError(t, err)

	svc.Now = fixedNow(time.Now().UTC().Add(2 * time.Hour))
	_, err = svc.Resolve(ctx, cookie)
	require.ErrorIs(t, err, store.ErrNotFound)
}
