package models

// ShopInfo is the static shop identity printed on bills and exposed to the
// client. Loaded from config/config.toml, never stored in the database.
type ShopInfo struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	GSTIN   string `json:"gstin"`
	BISNo   string `json:"bis_no"` // hallmark licence number
}
