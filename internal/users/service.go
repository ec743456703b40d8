// Package users owns user profiles and the email+password identity layer:
// sign-up with a verification gate, sign-in, theme preference, and account
// deletion. Profile documents live in the document store; the local view is
// a cache and every mutation writes through.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/model"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/docstore"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/signer"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrNotVerified        = errors.New("email not verified")
	ErrNoAccount          = errors.New("no account found, sign up first")
)

const (
	minPasswordLen    = 6
	defaultSessionTTL = 7 * 24 * time.Hour
)

// identity is the credential record, stored keyed by email in its own
// collection, separate from the profile document.
type identity struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Verified     bool   `json:"verified"`
	VerifyToken  string `json:"verify_token,omitempty"`
}

// Service wires the two document collections and the session codec.
type Service struct {
	profiles   docstore.Store
	identities docstore.Store
	sessions   signer.Codec
	sessionTTL time.Duration
}

func New(profiles, identities docstore.Store, sessions signer.Codec) *Service {
	return &Service{
		profiles:   profiles,
		identities: identities,
		sessions:   sessions,
		sessionTTL: defaultSessionTTL,
	}
}

func (s *Service) getIdentity(ctx context.Context, email string) (identity, error) {
	raw, err := s.identities.Get(ctx, email)
	if err != nil {
		return identity{}, err
	}
	var id identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return identity{}, fmt.Errorf("users: decode identity: %w", err)
	}
	return id, nil
}

func (s *Service) putIdentity(ctx context.Context, id identity) error {
	b, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return s.identities.Upsert(ctx, id.Email, b)
}

func (s *Service) upsertProfile(ctx context.Context, p model.UserProfile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.profiles.Upsert(ctx, p.UID, b)
}

// SignUp creates the identity and the profile document and returns the
// verification token the caller is expected to deliver to the user's inbox.
// Sign-in stays gated until VerifyEmail succeeds.
func (s *Service) SignUp(ctx context.Context, email, password string) (string, error) {
	if email == "" {
		return "", errors.New("email required")
	}
	if len(password) < minPasswordLen {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	if _, err := s.getIdentity(ctx, email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, docstore.ErrNotFound) {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	uid := xid.New().String()
	token := xid.New().String()
	if err := s.putIdentity(ctx, identity{
		UID:          uid,
		Email:        email,
		PasswordHash: string(hash),
		VerifyToken:  token,
	}); err != nil {
		return "", err
	}
	if err := s.upsertProfile(ctx, model.UserProfile{
		UID:          uid,
		Email:        email,
		Name:         "Anonymous",
		Theme:        model.ThemeDark,
		Bookmarked:   []model.Bookmark{},
		Subscription: "basic",
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		return "", err
	}
	log.Info().Str("uid", uid).Msg("user signed up, verification pending")
	return token, nil
}

// VerifyEmail flips the verified flag when the token matches.
func (s *Service) VerifyEmail(ctx context.Context, email, token string) error {
	id, err := s.getIdentity(ctx, email)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNoAccount
		}
		return err
	}
	if id.VerifyToken == "" || id.VerifyToken != token {
		return errors.New("invalid verification token")
	}
	id.Verified = true
	id.VerifyToken = ""
	if err := s.putIdentity(ctx, id); err != nil {
		return err
	}
	return s.profiles.UpdateField(ctx, id.UID, "verified", true)
}

// SignIn checks credentials and the verification gate, then issues a signed
// session token. An unknown email and a bad password are indistinguishable
// to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, model.UserProfile, error) {
	id, err := s.getIdentity(ctx, email)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return "", model.UserProfile{}, ErrInvalidCredentials
		}
		return "", model.UserProfile{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(id.PasswordHash), []byte(password)) != nil {
		return "", model.UserProfile{}, ErrInvalidCredentials
	}
	if !id.Verified {
		return "", model.UserProfile{}, ErrNotVerified
	}
	p, err := s.Profile(ctx, id.UID)
	if err != nil {
		return "", model.UserProfile{}, err
	}
	token := s.sessions.EncodeSession(id.UID, time.Now().Add(s.sessionTTL))
	return token, p, nil
}

// SignUpExternal provisions a profile for a provider-asserted identity
// (popup flow is collaborator concern). Provider identities skip the email
// verification gate.
func (s *Service) SignUpExternal(ctx context.Context, uid, email, name string) (string, error) {
	if _, err := s.profiles.Get(ctx, uid); errors.Is(err, docstore.ErrNotFound) {
		if name == "" {
			name = "Anonymous"
		}
		if err := s.upsertProfile(ctx, model.UserProfile{
			UID:        uid,
			Email:      email,
			Name:       name,
			Theme:      model.ThemeLight,
			Bookmarked: []model.Bookmark{},
			Verified:   true,
			CreatedAt:  time.Now().UTC(),
		}); err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	}
	return s.sessions.EncodeSession(uid, time.Now().Add(s.sessionTTL)), nil
}

// SignInExternal signs in an existing provider identity; unlike
// SignUpExternal it refuses to create a profile on the fly.
func (s *Service) SignInExternal(ctx context.Context, uid string) (string, error) {
	if _, err := s.profiles.Get(ctx, uid); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return "", ErrNoAccount
		}
		return "", err
	}
	return s.sessions.EncodeSession(uid, time.Now().Add(s.sessionTTL)), nil
}

// Profile loads the profile document.
func (s *Service) Profile(ctx context.Context, uid string) (model.UserProfile, error) {
	raw, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return model.UserProfile{}, err
	}
	var p model.UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.UserProfile{}, fmt.Errorf("users: decode profile: %w", err)
	}
	return p, nil
}

// Theme returns the stored preference, defaulting to light.
func (s *Service) Theme(ctx context.Context, uid string) (string, error) {
	p, err := s.Profile(ctx, uid)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return model.ThemeLight, nil
		}
		return "", err
	}
	if p.Theme == "" {
		return model.ThemeLight, nil
	}
	return p.Theme, nil
}

// ToggleTheme flips light/dark and writes through before reporting the new
// value.
func (s *Service) ToggleTheme(ctx context.Context, uid string) (string, error) {
	cur, err := s.Theme(ctx, uid)
	if err != nil {
		return "", err
	}
	next := model.ThemeDark
	if cur == model.ThemeDark {
		next = model.ThemeLight
	}
	if err := s.profiles.UpdateField(ctx, uid, "theme", next); err != nil {
		return "", err
	}
	return next, nil
}

// DeleteAccount re-authenticates with the password, then cascades: the
// profile document is deleted first, the identity record second.
func (s *Service) DeleteAccount(ctx context.Context, email, password string) error {
	id, err := s.getIdentity(ctx, email)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNoAccount
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(id.PasswordHash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	if err := s.profiles.Delete(ctx, id.UID); err != nil {
		return err
	}
	if err := s.identities.Delete(ctx, email); err != nil {
		return err
	}
	log.Info().Str("uid", id.UID).Msg("account deleted")
	return nil
}
