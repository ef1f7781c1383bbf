package api

import "context"

// LoginRequest is the credential pair for /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the token plus identity returned on success.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address,omitempty"`
}

// ResetPasswordRequest redeems a reset token for a new password.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Login authenticates and returns the bearer token with the user identity.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.post(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account. The backend does not log the user in; callers
// follow up with Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ForgotPassword requests a reset token for the given email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email"`
	}{Email: email}
	return c.post(ctx, "/auth/forgot-password", body, nil)
}

// ResetPassword redeems a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	return c.post(ctx, "/auth/reset-password", ResetPasswordRequest{Token: token, Password: password}, nil)
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, "/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UpdateProfile patches name/address on the authenticated user.
func (c *Client) UpdateProfile(ctx context.Context, name, address string) (*User, error) {
	body := struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}{Name: name, Address: address}
	var resp struct {
		User User `json:"user"`
	}
	if err := c.put(ctx, "/profile", body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
