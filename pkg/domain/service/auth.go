package service

import (
	"time"

	"github.com/google/uuid"

	"shopfront/pkg/domain/model"
	"shopfront/pkg/infrastructure/storage"
)

const (
	authKey  = "shop_auth_v1"
	usersKey = "shop_users_v1"
)

const (
	demoUser = "naman"
	demoPass = "1234"
)

// AuthService keeps the user directory in the durable scope and the
// active session in exactly one of the two scopes, depending on the
// remember choice made at login.
type AuthService interface {
	SignUp(username, password string) error
	Login(username, password string, remember bool) (*model.AuthSession, error)
	// CurrentSession returns model.ErrNoSession when neither scope
	// holds a session. The durable scope takes precedence.
	CurrentSession() (*model.AuthSession, error)
	Logout() error
}

// NewAuthService seeds the directory with the demo account when no
// directory exists yet.
func NewAuthService(durable, ephemeral storage.Store, dispatcher EventDispatcher) (AuthService, error) {
	s := &authService{durable: durable, ephemeral: ephemeral, dispatcher: dispatcher}
	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

type authService struct {
	durable    storage.Store
	ephemeral  storage.Store
	dispatcher EventDispatcher
}

func (s *authService) SignUp(username, password string) error {
	if username == "" || password == "" {
		return model.ErrBlankCredentials
	}

	users, err := s.users()
	if err != nil {
		return err
	}
	if _, taken := users[username]; taken {
		return model.ErrUserExists
	}

	users[username] = model.UserRecord{Pass: password, Created: time.Now().UnixMilli()}
	if err := s.durable.Set(usersKey, users); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.UserRegistered{Username: username})
	return nil
}

func (s *authService) Login(username, password string, remember bool) (*model.AuthSession, error) {
	users, err := s.users()
	if err != nil {
		return nil, err
	}

	record, ok := users[username]
	if !ok || record.Pass != password {
		return nil, model.ErrInvalidCredentials
	}

	session := model.AuthSession{
		User:  username,
		At:    time.Now().UnixMilli(),
		Token: uuid.NewString(),
	}

	// The two scopes are mutually exclusive: a fresh login replaces
	// whatever the previous one left behind.
	target, other := s.ephemeral, s.durable
	if remember {
		target, other = s.durable, s.ephemeral
	}
	if err := other.Remove(authKey); err != nil {
		return nil, err
	}
	if err := target.Set(authKey, session); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.UserLoggedIn{Username: username, Remember: remember})
	return &session, nil
}

func (s *authService) CurrentSession() (*model.AuthSession, error) {
	for _, scope := range []storage.Store{s.durable, s.ephemeral} {
		var session model.AuthSession
		ok, err := scope.Get(authKey, &session)
		if err != nil {
			return nil, err
		}
		if ok {
			return &session, nil
		}
	}
	return nil, model.ErrNoSession
}

func (s *authService) Logout() error {
	session, err := s.CurrentSession()
	if err != nil && err != model.ErrNoSession {
		return err
	}

	if err := s.durable.Remove(authKey); err != nil {
		return err
	}
	if err := s.ephemeral.Remove(authKey); err != nil {
		return err
	}

	if session != nil {
		_ = s.dispatcher.Dispatch(model.UserLoggedOut{Username: session.User})
	}
	return nil
}

func (s *authService) users() (model.Directory, error) {
	users := make(model.Directory)
	if _, err := s.durable.Get(usersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *authService) seed() error {
	users := make(model.Directory)
	ok, err := s.durable.Get(usersKey, &users)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	users[demoUser] = model.UserRecord{Pass: demoPass, Created: time.Now().UnixMilli()}
	return s.durable.Set(usersKey, users)
}
