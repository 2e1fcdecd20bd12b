package domain

// DashboardSummary — сводка для главной страницы админки.
type DashboardSummary struct {
	TotalPatients  int64                   `json:"total_patients"`
	TotalRequests  int64                   `json:"total_requests"`
	StatusCounts   map[RequestStatus]int64 `json:"status_counts"`
	RecentRequests []*ConsultationRequest  `json:"recent_requests"` // Последние новые заявки
}

// DailyCount — количество заявок за один день (для графиков).
type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// RequestStats — данные для /api/stats: динамика по дням с начала месяца
// плюс распределение по статусам.
type RequestStats struct {
	Daily  []DailyCount            `json:"daily"`
	Status map[RequestStatus]int64 `json:"status"`
}
