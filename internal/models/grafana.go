package models

// DashboardSummary is the reduced view of a Grafana search hit.
type DashboardSummary struct {
	UID    string   `json:"uid"`
	Title  string   `json:"title"`
	Folder string   `json:"folder"`
	URL    string   `json:"url"`
	Tags   []string `json:"tags"`
}

type DatasourceSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	URL       string `json:"url"`
	IsDefault bool   `json:"is_default"`
}

type AlertRuleSummary struct {
	UID       string `json:"uid"`
	Title     string `json:"title"`
	Condition string `json:"condition"`
	FolderUID string `json:"folder_uid"`
}

type ContactPointSummary struct {
	Name string `json:"name"`
	Type string `json:"type"`
	UID  string `json:"uid"`
}

type SnapshotSummary struct {
	Name    string `json:"name"`
	Key     string `json:"key"`
	Created string `json:"created"`
	Expires string `json:"expires"`
}

type DashboardResult struct {
	OperationResult
	UID string `json:"uid,omitempty"`
	URL string `json:"url,omitempty"`
}

type DatasourceResult struct {
	OperationResult
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
}

type SnapshotResult struct {
	OperationResult
	URL       string `json:"url,omitempty"`
	Key       string `json:"key,omitempty"`
	DeleteKey string `json:"delete_key,omitempty"`
}
