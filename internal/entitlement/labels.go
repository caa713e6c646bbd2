package entitlement

// Feature keys gated in the console.
const (
	FeatureBirthdayNotifications      = "birthday_notifications"
	FeatureDepartmentManagement       = "department_management"
	FeatureEventSharing               = "event_sharing"
	FeatureAdvancedFinancialReporting = "advanced_financial_reporting"
	FeatureEventManagement            = "event_management"
	FeatureAttendanceTracking         = "attendance_tracking"
	FeatureFinancialReporting         = "financial_reporting"
)

var featureLabels = map[string]string{
	FeatureBirthdayNotifications:      "Birthday Notifications",
	FeatureDepartmentManagement:       "Department Management",
	FeatureEventSharing:               "Event Sharing",
	FeatureAdvancedFinancialReporting: "Financial Reports",
	FeatureEventManagement:            "Event Management",
	FeatureAttendanceTracking:         "Attendance Tracking",
	FeatureFinancialReporting:         "Financial Reporting",
}

// LookupLabel returns the human-readable label for a known feature key.
func LookupLabel(key string) (string, bool) {
	label, ok := featureLabels[key]
	return label, ok
}

// FeatureDisplayName picks the name shown for a feature: the caller's
// override, then the label table, then the raw key.
func FeatureDisplayName(key, override string) string {
	if override != "" {
		return override
	}
	if label, ok := LookupLabel(key); ok {
		return label
	}
	return key
}
