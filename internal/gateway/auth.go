package gateway

import (
	"context"
	"net/http"

	"market-client/internal/domain"
)

type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResponse, error)
	SendOTP(ctx context.Context, email string) (*StatusMessage, error)
	VerifyOTP(ctx context.Context, email, otp string) (*StatusMessage, error)
	ForgotPassword(ctx context.Context, email string) (*StatusMessage, error)
	VerifyResetCode(ctx context.Context, email, code string) (*StatusMessage, error)
	ResetPassword(ctx context.Context, email, code, password string) (*StatusMessage, error)
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password"`

	ProfileImage *File `json:"-"`
}

func (in RegisterInput) form() *form {
	return newForm(in).
		set("firstName", in.FirstName).
		set("lastName", in.LastName).
		set("username", in.Username).
		set("email", in.Email).
		set("phone", in.Phone).
		set("password", in.Password).
		file("profileImage", in.ProfileImage)
}

type authGateway struct {
	client *Client
}

func NewAuthGateway(client *Client) AuthGateway {
	return &authGateway{client: client}
}

func (g *authGateway) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	if err := required("email", email); err != nil {
		return nil, err
	}
	if err := required("password", password); err != nil {
		return nil, err
	}
	var resp AuthResponse
	if err := g.client.do(ctx, call{
		operation: "Login",
		method:    http.MethodPost,
		path:      route("auth", "login"),
		json:      map[string]string{"email": email, "password": password},
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *authGateway) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	for _, check := range []struct{ field, value string }{
		{"email", in.Email},
		{"username", in.Username},
		{"password", in.Password},
	} {
		if err := required(check.field, check.value); err != nil {
			return nil, err
		}
	}
	var resp AuthResponse
	if err := g.client.do(ctx, call{
		operation: "Register",
		method:    http.MethodPost,
		path:      route("auth", "register"),
		form:      in.form(),
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *authGateway) SendOTP(ctx context.Context, email string) (*StatusMessage, error) {
	return g.post(ctx, "SendOTP", route("auth", "send-otp"), map[string]string{"email": email})
}

func (g *authGateway) VerifyOTP(ctx context.Context, email, otp string) (*StatusMessage, error) {
	return g.post(ctx, "VerifyOTP", route("auth", "verify-otp"), map[string]string{"email": email, "otp": otp})
}

func (g *authGateway) ForgotPassword(ctx context.Context, email string) (*StatusMessage, error) {
	return g.post(ctx, "ForgotPassword", route("auth", "forgot-password"), map[string]string{"email": email})
}

func (g *authGateway) VerifyResetCode(ctx context.Context, email, code string) (*StatusMessage, error) {
	return g.post(ctx, "VerifyResetCode", route("auth", "verify-reset-code"), map[string]string{"email": email, "code": code})
}

func (g *authGateway) ResetPassword(ctx context.Context, email, code, password string) (*StatusMessage, error) {
	return g.post(ctx, "ResetPassword", route("auth", "reset-password"), map[string]string{
		"email":    email,
		"code":     code,
		"password": password,
	})
}

func (g *authGateway) post(ctx context.Context, operation, path string, body map[string]string) (*StatusMessage, error) {
	var msg StatusMessage
	if err := g.client.do(ctx, call{
		operation: operation,
		method:    http.MethodPost,
		path:      path,
		json:      body,
	}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
