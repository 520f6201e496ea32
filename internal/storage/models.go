package storage

// HistoryEntry is one saved exchange in the chat history.
type HistoryEntry struct {
	ID           string  `json:"id"`
	ClientID     string  `json:"client_id"`
	Source       string  `json:"source"` // text or voice
	InputText    string  `json:"input"`
	ResponseText string  `json:"response"`
	FollowUp     string  `json:"follow_up,omitempty"`
	Intent       string  `json:"intent"`
	Confidence   float64 `json:"confidence"`
	InputType    string  `json:"input_type"`
	CreatedAt    int64   `json:"created_at"`
}

// Building is a campus building record.
type Building struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Hours     string `json:"hours,omitempty"`
	Services  string `json:"services,omitempty"`
	Contact   string `json:"contact,omitempty"`
	UpdatedAt int64  `json:"-"`
}

// Event is a campus event record.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	UpdatedAt   int64  `json:"-"`
}

// Club is a student club record.
type Club struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	MeetingTime string `json:"meeting_time,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	Contact     string `json:"contact,omitempty"`
	UpdatedAt   int64  `json:"-"`
}

// Service is a campus service record.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location,omitempty"`
	Hours       string `json:"hours,omitempty"`
	Description string `json:"description,omitempty"`
	Contact     string `json:"contact,omitempty"`
	UpdatedAt   int64  `json:"-"`
}

// FAQ is a frequently asked question with its canned answer.
type FAQ struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Category  string `json:"category,omitempty"`
	UpdatedAt int64  `json:"-"`
}
