package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"ai-coding-school-go/internal/model"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL    = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL   = "https://oauth2.googleapis.com/token"
	googleProfileURL = "https://www.googleapis.com/oauth2/v3/userinfo"

	kakaoAuthURL    = "https://kauth.kakao.com/oauth/authorize"
	kakaoTokenURL   = "https://kauth.kakao.com/oauth/token"
	kakaoProfileURL = "https://kapi.kakao.com/v2/user/me"

	kakaoDefaultNickname = "카카오 사용자"
)

// Profile is the identity a provider returns after a successful login.
type Profile struct {
	Provider   model.Provider
	ID         string
	Email      string
	Name       string
	PictureURL string

	// EmailVerified is set only when the provider vouches for Email.
	EmailVerified bool
}

type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Endpoint overrides; the provider's public endpoints are used when empty.
	AuthURL    string
	TokenURL   string
	ProfileURL string
}

type Provider struct {
	name       model.Provider
	config     oauth2.Config
	profileURL string
	parse      func([]byte) (Profile, error)
}

func newProvider(name model.Provider, cfg ProviderConfig, authURL, tokenURL, profileURL string, scopes []string, parse func([]byte) (Profile, error)) *Provider {
	if cfg.AuthURL != "" {
		authURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		tokenURL = cfg.TokenURL
	}
	if cfg.ProfileURL != "" {
		profileURL = cfg.ProfileURL
	}

	return &Provider{
		name: name,
		config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		profileURL: profileURL,
		parse:      parse,
	}
}

func NewGoogleProvider(cfg ProviderConfig) *Provider {
	return newProvider(model.ProviderGoogle, cfg, googleAuthURL, googleTokenURL, googleProfileURL,
		[]string{"openid", "email", "profile"}, parseGoogleProfile)
}

func NewKakaoProvider(cfg ProviderConfig) *Provider {
	return newProvider(model.ProviderKakao, cfg, kakaoAuthURL, kakaoTokenURL, kakaoProfileURL,
		[]string{"profile_nickname", "profile_image", "account_email"}, parseKakaoProfile)
}

func (p *Provider) Name() model.Provider {
	return p.name
}

// AuthCodeURL returns the consent page URL. Google always shows the account
// chooser.
func (p *Provider) AuthCodeURL(state string) string {
	if p.name == model.ProviderGoogle {
		return p.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
	}
	return p.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for the user's profile.
func (p *Provider) Exchange(ctx context.Context, code string) (Profile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.ErrorCode == "access_denied" {
			return Profile{}, ErrPopupClosed
		}
		return Profile{}, fmt.Errorf("exchanging %s code: %w", p.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.profileURL, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("building %s profile request: %w", p.name, err)
	}

	resp, err := p.config.Client(ctx, token).Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("requesting %s profile: %w", p.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Profile{}, fmt.Errorf("reading %s profile: %w", p.name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("%s profile returned %d: %s", p.name, resp.StatusCode, body)
	}

	return p.parse(body)
}

// CallbackError translates the error parameter a provider puts on the
// redirect back to us.
func CallbackError(code string) error {
	switch code {
	case "":
		return nil
	case "access_denied", "user_cancelled":
		return ErrPopupClosed
	default:
		return fmt.Errorf("oauth callback: %s", code)
	}
}

func parseGoogleProfile(body []byte) (Profile, error) {
	var info struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return Profile{}, fmt.Errorf("decoding google profile: %w", err)
	}
	if info.Sub == "" {
		return Profile{}, errors.New("google profile has no subject")
	}

	return Profile{
		Provider:      model.ProviderGoogle,
		ID:            info.Sub,
		Email:         info.Email,
		Name:          info.Name,
		PictureURL:    info.Picture,
		EmailVerified: info.Email != "" && info.EmailVerified,
	}, nil
}

func parseKakaoProfile(body []byte) (Profile, error) {
	var info struct {
		ID           int64 `json:"id"`
		KakaoAccount struct {
			Email           string `json:"email"`
			IsEmailValid    bool   `json:"is_email_valid"`
			IsEmailVerified bool   `json:"is_email_verified"`
			Profile         struct {
				Nickname        string `json:"nickname"`
				ProfileImageURL string `json:"profile_image_url"`
			} `json:"profile"`
		} `json:"kakao_account"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return Profile{}, fmt.Errorf("decoding kakao profile: %w", err)
	}
	if info.ID == 0 {
		return Profile{}, errors.New("kakao profile has no id")
	}

	id := strconv.FormatInt(info.ID, 10)
	profile := Profile{
		Provider:   model.ProviderKakao,
		ID:         id,
		Email:      info.KakaoAccount.Email,
		Name:       info.KakaoAccount.Profile.Nickname,
		PictureURL: info.KakaoAccount.Profile.ProfileImageURL,
	}
	profile.EmailVerified = profile.Email != "" &&
		info.KakaoAccount.IsEmailValid && info.KakaoAccount.IsEmailVerified
	// Kakao only shares an email with consent.
	if profile.Email == "" {
		profile.Email = "kakao_" + id + "@temp.com"
	}
	if profile.Name == "" {
		profile.Name = kakaoDefaultNickname
	}

	return profile, nil
}
