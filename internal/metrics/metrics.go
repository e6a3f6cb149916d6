package metrics

// Campaign and conversation kinds tracked by the platform
const (
	KindOutreach     = "outreach"
	KindSales        = "sales"
	KindWebAgents    = "web_agents"
	KindWebAgentChat = "web_agent_chat"
)

// Plan change directions
const (
	DirectionUpgrade   = "upgrade"
	DirectionDowngrade = "downgrade"
)

// DailyUserCount is the number of sign-ups on one day, split by
// verification state. Date is formatted as YYYY-MM-DD.
type DailyUserCount struct {
	Date       string
	Verified   int
	Unverified int
}

// UserCountMetrics summarizes sign-ups per day
type UserCountMetrics struct {
	DailyCounts []DailyUserCount
	TotalUsers  int
}

// CountryCount is the number of users registered from one country
type CountryCount struct {
	Country string
	Count   int
}

// PlanCount is the number of active subscriptions on one plan
type PlanCount struct {
	Plan  string
	Count int
}

// DailyCampaignCount is the number of campaigns created on one day
type DailyCampaignCount struct {
	Date     string
	Outreach int
	Sales    int
}

// CampaignMetrics summarizes campaign creation per day
type CampaignMetrics struct {
	DailyCounts   []DailyCampaignCount
	TotalOutreach int
	TotalSales    int
}

// DailyConversationCount is the number of conversations started on one day
type DailyConversationCount struct {
	Date         string
	Outreach     int
	Sales        int
	WebAgents    int
	WebAgentChat int
}

// ConversationMetrics summarizes conversations per day
type ConversationMetrics struct {
	DailyCounts       []DailyConversationCount
	TotalOutreach     int
	TotalSales        int
	TotalWebAgents    int
	TotalWebAgentChat int
}

// DailyAppointmentCount is the number of appointments booked on one day
type DailyAppointmentCount struct {
	Date  string
	Count int
}

// AppointmentMetrics summarizes appointments per day
type AppointmentMetrics struct {
	DailyAppointments []DailyAppointmentCount
	TotalAppointments int
}

// PlanChangeCount is the number of plan upgrades and downgrades in one month
type PlanChangeCount struct {
	Month      int
	Year       int
	Upgraded   int
	Downgraded int
}
