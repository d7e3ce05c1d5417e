package model

// EntityType enumerates the first-class object kinds journal text may reference.
type EntityType string

const (
	EntityTypePerson  EntityType = "PERSON"
	EntityTypeHabit   EntityType = "HABIT"
	EntityTypeProject EntityType = "PROJECT"
	EntityTypeGoal    EntityType = "GOAL"
	EntityTypeDream   EntityType = "DREAM"
	EntityTypeEvent   EntityType = "EVENT"
	EntityTypeCustom  EntityType = "CUSTOM"
)

type PlanType string

const (
	PlanFree   PlanType = "FREE"
	PlanPro    PlanType = "PRO"
	PlanVision PlanType = "VISION"
)

type SubscriptionStatus string

const (
	SubscriptionActive     SubscriptionStatus = "ACTIVE"
	SubscriptionPastDue    SubscriptionStatus = "PAST_DUE"
	SubscriptionCanceled   SubscriptionStatus = "CANCELED"
	SubscriptionTrialing   SubscriptionStatus = "TRIALING"
	SubscriptionIncomplete SubscriptionStatus = "INCOMPLETE"
)

type TrackingFrequency string

const (
	TrackingDaily   TrackingFrequency = "DAILY"
	TrackingWeekly  TrackingFrequency = "WEEKLY"
	TrackingMonthly TrackingFrequency = "MONTHLY"
)

type TrackingConfig struct {
	Enabled   bool              `json:"enabled"`
	Frequency TrackingFrequency `json:"frequency,omitempty"`
	Goal      float64           `json:"goal,omitempty"`
	Unit      string            `json:"unit,omitempty"`
	Type      string            `json:"type,omitempty"` // BOOLEAN | INTEGER | DECIMAL
}

type Entity struct {
	Id          string                 `json:"id"`
	UserId      string                 `json:"userId"`
	Type        EntityType             `json:"type"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Icon        string                 `json:"icon,omitempty"`
	Color       string                 `json:"color,omitempty"`
	Tracking    *TrackingConfig        `json:"tracking,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
	ArchivedAt  string                 `json:"archivedAt,omitempty"`
}

// Archived reports whether the entity has been soft-deleted.
func (e *Entity) Archived() bool {
	return e.ArchivedAt != ""
}

// NoteIndex is the list-view projection of a note (no content).
type NoteIndex struct {
	Id         string `json:"id"`
	UserId     string `json:"userId"`
	FolderId   string `json:"folderId,omitempty"`
	Title      string `json:"title"`
	Preview    string `json:"preview,omitempty"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
	ArchivedAt string `json:"archivedAt,omitempty"`
}

// Note is the full note with content, as returned by the service.
type Note struct {
	Id        string `json:"id"`
	UserId    string `json:"userId"`
	FolderId  string `json:"folderId,omitempty"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Folder struct {
	Id        string `json:"id"`
	UserId    string `json:"userId"`
	Name      string `json:"name"`
	ParentId  string `json:"parentId,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type TrackingEvent struct {
	Id           string  `json:"id"`
	UserId       string  `json:"userId"`
	EntityId     string  `json:"entityId"`
	Date         string  `json:"date"` // yyyy-MM-dd
	Value        int     `json:"value,omitempty"`
	DecimalValue float64 `json:"decimalValue,omitempty"`
	Note         string  `json:"note,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

type TrackingStats struct {
	TotalDays     int     `json:"totalDays"`
	CurrentStreak int     `json:"currentStreak"`
	LongestStreak int     `json:"longestStreak"`
	AvgValue      float64 `json:"avgValue"`
	FirstTracked  string  `json:"firstTracked,omitempty"`
	LastTracked   string  `json:"lastTracked,omitempty"`
}

type TopEntity struct {
	Type     string `json:"type"`
	Id       string `json:"id"`
	Name     string `json:"name"`
	Mentions int    `json:"mentions"`
}

type DashboardMetrics struct {
	UniquePeople   int         `json:"uniquePeople"`
	UniqueProjects int         `json:"uniqueProjects"`
	UniqueHabits   int         `json:"uniqueHabits"`
	TotalMentions  int         `json:"totalMentions"`
	TopPeople      []TopEntity `json:"topPeople"`
	TopProjects    []TopEntity `json:"topProjects"`
	TopHabits      []TopEntity `json:"topHabits"`
}

type MentionEntry struct {
	NoteId    string `json:"noteId"`
	NoteTitle string `json:"noteTitle"`
	Date      string `json:"date"` // yyyy-MM-dd
	Context   string `json:"context"`
}

type EntityTimeline struct {
	EntityId      string         `json:"entityId"`
	EntityType    string         `json:"entityType"`
	EntityName    string         `json:"entityName"`
	TotalMentions int            `json:"totalMentions"`
	Heatmap       map[string]int `json:"heatmap"` // date -> count
	Mentions      []MentionEntry `json:"mentions"`
}

type Subscription struct {
	Id                 string             `json:"id"`
	UserId             string             `json:"userId"`
	EffectivePlan      PlanType           `json:"effectivePlan"`
	Status             SubscriptionStatus `json:"status"`
	MaxEntities        int                `json:"maxEntities"`
	MaxNotes           int                `json:"maxNotes"`
	MaxHabits          int                `json:"maxHabits"`
	AdvancedMetrics    bool               `json:"advancedMetrics"`
	DataExport         bool               `json:"dataExport"`
	CurrentPeriodEnd   string             `json:"currentPeriodEnd,omitempty"`
	CancelAtPeriodEnd  bool               `json:"cancelAtPeriodEnd,omitempty"`
	InGracePeriod      bool               `json:"inGracePeriod"`
}

type User struct {
	Id          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Active      bool     `json:"active"`
	Plan        PlanType `json:"plan"`
	EntityCount int      `json:"entityCount"`
	NoteCount   int      `json:"noteCount"`
	HabitCount  int      `json:"habitCount"`
	VaultId     string   `json:"vaultId"`
}
