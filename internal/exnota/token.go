package exnota

// TokenResponse is the grant returned by the Notion OAuth token endpoint.
// Notion recommends keeping all of it so users need not re-authorize if more
// of it is needed later. AccessToken is empty once the grant has passed
// through the proxy, which moves the token into an HTTP-only cookie.
type TokenResponse struct {
	AccessToken          string `json:"access_token,omitempty"`
	TokenType            string `json:"token_type,omitempty"`
	BotID                string `json:"bot_id,omitempty"`
	WorkspaceID          string `json:"workspace_id,omitempty"`
	WorkspaceName        string `json:"workspace_name,omitempty"`
	WorkspaceIcon        string `json:"workspace_icon,omitempty"`
	DuplicatedTemplateID string `json:"duplicated_template_id,omitempty"`
	Owner                *Owner `json:"owner,omitempty"`
}

// Owner represents the owner of the token
type Owner struct {
	Type      string `json:"type,omitempty"`
	Workspace bool   `json:"workspace,omitempty"`
	User      *User  `json:"user,omitempty"`
}

// User represents a Notion user
type User struct {
	Object    string  `json:"object,omitempty"`
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Type      string  `json:"type,omitempty"`
	Person    *Person `json:"person,omitempty"`
}

// Person holds person-specific user details
type Person struct {
	Email string `json:"email,omitempty"`
}

// HasGrant reports whether the response identifies a grant: it either still
// holds the access token or names the bot the token was issued to.
func (t *TokenResponse) HasGrant() bool {
	return t.AccessToken != "" || t.BotID != ""
}

// WithoutAccessToken returns a copy with the access token removed
func (t TokenResponse) WithoutAccessToken() TokenResponse {
	t.AccessToken = ""
	return t
}
