package dto

// Request/response shapes shared by the HTTP handlers. Validation tags are
// enforced by the shared validator instance in internal/handlers.

type LoginRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
	Role         string `json:"role"`
	Zone         string `json:"zone"`
}

type CreateUserRequest struct {
	UserID   string `json:"userId" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Role     string `json:"role" validate:"required,oneof=SuperAdmin Admin HR Viewer"`
	Zone     string `json:"zone"`
	Photo    string `json:"photo"`
}

type UpdateUserRequest struct {
	Email  string `json:"email" validate:"omitempty,email"`
	Role   string `json:"role" validate:"omitempty,oneof=SuperAdmin Admin HR Viewer"`
	Zone   string `json:"zone"`
	Photo  string `json:"photo"`
	Status string `json:"status" validate:"omitempty,oneof=active suspended"`
}

type CreateProfileRequest struct {
	FullName   string   `json:"fullName" validate:"required,min=2,max=200"`
	Position   string   `json:"position"`
	Department string   `json:"department"`
	Zone       string   `json:"zone" validate:"required"`
	Address    string   `json:"address"`
	Phone      string   `json:"phone"`
	Tags       []string `json:"tags"`
	Photo      string   `json:"photo"`
}

type UpdateProfileRequest struct {
	Position   string   `json:"position"`
	Department string   `json:"department"`
	Zone       string   `json:"zone"`
	Address    string   `json:"address"`
	Phone      string   `json:"phone"`
	Status     string   `json:"status" validate:"omitempty,oneof=pending active on_leave departed"`
	Tags       []string `json:"tags"`
	Photo      string   `json:"photo"`
}

type AddCommentRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

type CreateRouteRequest struct {
	Name  string             `json:"name" validate:"required"`
	Zone  string             `json:"zone" validate:"required"`
	Stops []PickupPointInput `json:"stops" validate:"dive"`
}

type PickupPointInput struct {
	Name     string `json:"name" validate:"required"`
	Position int    `json:"position" validate:"gte=0"`
}

type AssignRiderRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// SendNotificationRequest is the dispatch entry point body. An event with
// neither TargetUsers nor TargetZone is accepted and delivered to nobody.
type SendNotificationRequest struct {
	Type        string         `json:"type" validate:"required"`
	TargetUsers []string       `json:"targetUsers"`
	TargetZone  string         `json:"targetZone"`
	Message     string         `json:"message" validate:"required"`
	Data        map[string]any `json:"data"`
}

type UpdatePreferencesRequest struct {
	MentionAlerts *bool `json:"mentionAlerts"`
	ProfileAlerts *bool `json:"profileAlerts"`
	RouteAlerts   *bool `json:"routeAlerts"`
	EmailOnTag    *bool `json:"emailOnTag"`
}
