package models

type Setting struct {
	Key   string `json:"key" gorm:"type:varchar(100);primaryKey"`
	Value string `json:"value" gorm:"type:text;not null"`
}

type SettingsUpdateRequest struct {
	Settings map[string]string `json:"settings" validate:"required"`
}
