package exnota

// OptionsConfig holds the user's options: the destination page and an
// optional Notion internal integration token. It is immutable.
type OptionsConfig struct {
	page  *Page
	token string
}

// NewOptionsConfig creates options pointing at page
func NewOptionsConfig(page Page) OptionsConfig {
	return OptionsConfig{page: &page}
}

// RestoreOptionsConfig rebuilds options from stored fields. page may be nil.
func RestoreOptionsConfig(page *Page, token string) OptionsConfig {
	c := OptionsConfig{token: token}
	if page != nil {
		p := *page
		c.page = &p
	}
	return c
}

// Page returns the destination page, or nil when none was chosen
func (c OptionsConfig) Page() *Page {
	if c.page == nil {
		return nil
	}
	p := *c.page
	return &p
}

// Token returns the integration token, possibly empty
func (c OptionsConfig) Token() string {
	return c.token
}

// WithPage returns a copy with the page replaced
func (c OptionsConfig) WithPage(page Page) OptionsConfig {
	c.page = &page
	return c
}

// WithToken returns a copy with the token replaced
func (c OptionsConfig) WithToken(token string) OptionsConfig {
	c.token = token
	return c
}
