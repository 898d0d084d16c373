package models

import "fmt"

// ColumnPreferenceKeys 报表可见列的完整key列表
var ColumnPreferenceKeys = []string{
	"type_of_lead",
	"project_name",
	"name_of_lead",
	"designation_of_lead",
	"company_name",
	"phone_number_of_lead",
	"email_of_lead",
	"source_of_lead",
	"reference_name",
	"reference_phone_number",
	"intrested",
	"follow_up_date",
	"payment_info",
	"follow_up_conversation",
	"status",
	"created_at",
	"actions",
}

// DefaultColumnPreferences 默认列显示配置
func DefaultColumnPreferences() map[string]bool {
	prefs := make(map[string]bool, len(ColumnPreferenceKeys))
	for _, key := range ColumnPreferenceKeys {
		prefs[key] = true
	}
	// 引荐字段默认隐藏
	prefs["reference_name"] = false
	prefs["reference_phone_number"] = false
	return prefs
}

// MergeColumnPreferences 将用户已存储的配置覆盖到默认配置上
func MergeColumnPreferences(stored map[string]bool) map[string]bool {
	merged := DefaultColumnPreferences()
	for key, value := range stored {
		merged[key] = value
	}
	return merged
}

// ValidateColumnPreferences 校验配置：每个必需key都存在且为布尔值
// 入参为原始JSON map，返回第一个非法字段的错误
func ValidateColumnPreferences(raw map[string]interface{}) (map[string]bool, error) {
	if raw == nil {
		return nil, fmt.Errorf("Column preferences are required")
	}

	prefs := make(map[string]bool, len(ColumnPreferenceKeys))
	for _, key := range ColumnPreferenceKeys {
		value, exists := raw[key]
		if !exists {
			return nil, fmt.Errorf("Invalid value for %s. Must be a boolean.", key)
		}
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("Invalid value for %s. Must be a boolean.", key)
		}
		prefs[key] = b
	}

	return prefs, nil
}
