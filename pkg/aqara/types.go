package aqara

import "encoding/json"

// Intent constants for the vendor's single-endpoint RPC API.
// These strings are defined by the vendor and must match exactly.
const (
	IntentDeviceList    = "query.device.info"
	IntentResourceValue = "query.resource.value"
	IntentResourceWrite = "write.resource.device"
	IntentSceneList     = "query.scene.listAll"
	IntentSceneRun      = "config.scene.run"
	IntentHistory       = "fetch.resource.history"
)

// envelope is the vendor's uniform response wrapper. Code 0 is the only
// success code. Some endpoints populate result, others data; both are
// checked when extracting the payload.
type envelope struct {
	Code       int             `json:"code"`
	RequestID  string          `json:"requestId"`
	Message    string          `json:"message"`
	MsgDetails string          `json:"msgDetails,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// payload returns whichever of result/data the vendor populated.
func (e *envelope) payload() json.RawMessage {
	if len(e.Result) > 0 && string(e.Result) != "null" {
		return e.Result
	}
	return e.Data
}

// Device is a read-only mirror of a device record held by the vendor cloud.
type Device struct {
	DID             string         `json:"did"`
	UID             string         `json:"uid,omitempty"`
	Name            string         `json:"name"`
	Model           string         `json:"model"`
	ModelType       int            `json:"modelType"`
	Online          bool           `json:"online"`
	FirmwareVersion string         `json:"firmwareVersion,omitempty"`
	CreateTime      int64          `json:"createTime,omitempty"`
	UpdateTime      int64          `json:"updateTime,omitempty"`
	ResourceInfo    []ResourceInfo `json:"resourceInfo,omitempty"`
}

// ResourceInfo describes a single readable/writable attribute of a device.
type ResourceInfo struct {
	ResourceID   string   `json:"resourceId"`
	ResourceName string   `json:"resourceName"`
	Access       []string `json:"access,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// ResourceValue is one current attribute value returned by a status query.
type ResourceValue struct {
	SubjectID  string `json:"subjectId"`
	ResourceID string `json:"resourceId"`
	Value      any    `json:"value"`
	TimeStamp  int64  `json:"timeStamp,omitempty"`
}

// Scene mirrors an automation scene defined on the vendor cloud.
type Scene struct {
	SceneID     string `json:"sceneId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Enable      bool   `json:"enable"`
	CreateTime  int64  `json:"createTime,omitempty"`
	UpdateTime  int64  `json:"updateTime,omitempty"`
}

// HistoryPoint is one sample of a device resource's recorded history.
type HistoryPoint struct {
	Time       int64  `json:"time"`
	Value      any    `json:"value"`
	ResourceID string `json:"resourceId"`
}

// Page wraps a paged vendor listing together with the total row count.
type Page[T any] struct {
	Data       []T `json:"data"`
	TotalCount int `json:"totalCount"`
}
