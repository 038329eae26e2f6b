package domain

import "time"

// UserRole enumerates the roles a user can hold.
type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// TokenKind enumerates the auxiliary token kinds stored on a user document.
type TokenKind string

const (
	TokenKindRefresh      TokenKind = "refresh"
	TokenKindReset        TokenKind = "reset"
	TokenKindVerification TokenKind = "verification"
)

// AuthToken is a server-tracked auxiliary token (refresh/reset/verification),
// distinct from the stateless signed bearer tokens.
type AuthToken struct {
	Token   string    `json:"token" bson:"token"`
	Kind    TokenKind `json:"kind" bson:"kind"`
	Expires time.Time `json:"expires" bson:"expires"`
}

// UserProfile holds optional profile information.
type UserProfile struct {
	FirstName string `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Avatar    string `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Bio       string `json:"bio,omitempty" bson:"bio,omitempty"`
	Website   string `json:"website,omitempty" bson:"website,omitempty"`
	Timezone  string `json:"timezone" bson:"timezone"`
	Language  string `json:"language" bson:"language"`
}

// NotificationPreferences controls how a user is notified.
type NotificationPreferences struct {
	Email  bool   `json:"email" bson:"email"`
	Push   bool   `json:"push" bson:"push"`
	Digest string `json:"digest" bson:"digest"` // daily | weekly | monthly
}

// PrivacyPreferences controls visibility of a user's data.
type PrivacyPreferences struct {
	ProfilePublic  bool `json:"profilePublic" bson:"profilePublic"`
	ArticlesPublic bool `json:"articlesPublic" bson:"articlesPublic"`
}

// UserPreferences holds display and notification preferences.
type UserPreferences struct {
	Theme           string                  `json:"theme" bson:"theme"`             // light | dark | auto
	DefaultView     string                  `json:"defaultView" bson:"defaultView"` // list | timeline | grid
	ArticlesPerPage int                     `json:"articlesPerPage" bson:"articlesPerPage"`
	Notifications   NotificationPreferences `json:"notifications" bson:"notifications"`
	Privacy         PrivacyPreferences      `json:"privacy" bson:"privacy"`
}

// UserStats holds denormalized per-user counters.
type UserStats struct {
	ArticlesAdded int64      `json:"articlesAdded" bson:"articlesAdded"`
	LastLogin     *time.Time `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	TotalViews    int64      `json:"totalViews" bson:"totalViews"`
}

// User represents a registered user of the archiver.
// PasswordHash and Tokens are never serialized outward.
type User struct {
	UserID       string          `json:"id" bson:"_id"`
	Username     string          `json:"username" bson:"username"`
	Email        string          `json:"email" bson:"email"`
	PasswordHash string          `json:"-" bson:"passwordHash"`
	Profile      UserProfile     `json:"profile" bson:"profile"`
	Preferences  UserPreferences `json:"preferences" bson:"preferences"`
	Role         UserRole        `json:"role" bson:"role"`
	Permissions  []string        `json:"permissions,omitempty" bson:"permissions,omitempty"`
	Stats        UserStats       `json:"stats" bson:"stats"`
	Tokens       []AuthToken     `json:"-" bson:"tokens"`
	IsActive     bool            `json:"isActive" bson:"isActive"`
	IsVerified   bool            `json:"isVerified" bson:"isVerified"`
	Timestamps   `bson:",inline"`
}

// DefaultPreferences returns the preference set applied to new users.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		Theme:           "auto",
		DefaultView:     "list",
		ArticlesPerPage: 20,
		Notifications: NotificationPreferences{
			Email:  true,
			Push:   false,
			Digest: "weekly",
		},
		Privacy: PrivacyPreferences{
			ProfilePublic:  false,
			ArticlesPublic: true,
		},
	}
}

// FullName returns the profile name, falling back to the username.
func (u *User) FullName() string {
	name := u.Profile.FirstName
	if u.Profile.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.Profile.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}
