package response_models

type AdminOverview struct {
	AccountsByRole map[string]int64            `json:"accounts_by_role"`
	TotalAccounts  int64                       `json:"total_accounts"`
	MenuItems      int64                       `json:"menu_items"`
	Ratings        int64                       `json:"ratings"`
	Requests       map[string]map[string]int64 `json:"requests"`
}
