package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestAuthCodeURLRequestsReadonlyScope(t *testing.T) {
	o := NewOAuth("client-id", "secret", "http://localhost:8080/auth/youtube/callback", nil)

	raw := o.AuthCodeURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "https://www.googleapis.com/auth/youtube.readonly", q.Get("scope"))
	assert.Equal(t, "http://localhost:8080/auth/youtube/callback", q.Get("redirect_uri"))
}

func TestExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"ya29.token","token_type":"Bearer","expires_in":3600}`)
	}))
	defer srv.Close()

	o := NewOAuth("client-id", "secret", "http://localhost/cb", nil).
		WithEndpoint(oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"})

	token, err := o.Exchange(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "ya29.token", token.AccessToken)
}

func TestNewOAuthFromJSON(t *testing.T) {
	creds := []byte(`{"web":{"client_id":"cid","client_secret":"cs","redirect_uris":["http://localhost/cb"],"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token"}}`)

	o, err := NewOAuthFromJSON(creds, nil)
	require.NoError(t, err)
	assert.Contains(t, o.AuthCodeURL("s"), "client_id=cid")

	_, err = NewOAuthFromJSON([]byte(`{}`), nil)
	assert.Error(t, err)
}
