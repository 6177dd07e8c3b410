package identity

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
)

// GoTrue implements Provider on top of the Supabase auth service.
type GoTrue struct {
	client gotrue.Client
}

// NewGoTrue builds a provider for the given Supabase project. projectURL is
// the project base URL, e.g. https://abcdefgh.supabase.co.
func NewGoTrue(projectURL, apiKey string) (*GoTrue, error) {
	ref, err := projectRef(projectURL)
	if err != nil {
		return nil, err
	}
	return &GoTrue{client: gotrue.New(ref, apiKey)}, nil
}

func (p *GoTrue) SignUp(ctx context.Context, email, password string) (*Session, error) {
	resp, err := p.client.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, Classify(err)
	}

	return &Session{
		User: User{
			ID:    resp.User.ID.String(),
			Email: resp.User.Email,
		},
		AccessToken: resp.AccessToken,
	}, nil
}

func (p *GoTrue) SignIn(ctx context.Context, email, password string) (*Session, error) {
	resp, err := p.client.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, Classify(err)
	}

	return &Session{
		User: User{
			ID:    resp.User.ID.String(),
			Email: resp.User.Email,
		},
		AccessToken: resp.AccessToken,
	}, nil
}

func (p *GoTrue) SignOut(ctx context.Context, session *Session) error {
	if session == nil || session.AccessToken == "" {
		return nil
	}
	if err := p.client.WithToken(session.AccessToken).Logout(); err != nil {
		return Classify(err)
	}
	return nil
}

// projectRef extracts the project reference from a Supabase project URL
// (the subdomain of *.supabase.co).
func projectRef(projectURL string) (string, error) {
	parsed, err := url.Parse(projectURL)
	if err != nil {
		return "", err
	}
	host := parsed.Hostname()
	if host == "" {
		host = projectURL
	}
	ref, _, found := strings.Cut(host, ".")
	if !found || ref == "" {
		return "", errors.New("identity: cannot derive project reference from URL " + projectURL)
	}
	return ref, nil
}
