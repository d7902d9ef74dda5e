package model

import "time"

// DeviceStatus is the reported availability of a monitoring instrument.
type DeviceStatus string

const (
	StatusOnline  DeviceStatus = "Online"
	StatusOffline DeviceStatus = "Offline"
)

// ImportType enumerates the data formats a device can ingest.
type ImportType string

const (
	ImportCSV    ImportType = "CSV"
	ImportJSON   ImportType = "JSON"
	ImportXML    ImportType = "XML"
	ImportLAS    ImportType = "LAS"
	ImportImages ImportType = "Images"
)

// DeviceTypes lists the recognized instrument categories.
var DeviceTypes = []string{
	"Ground Radar",
	"Optical Scanner",
	"Subsurface Monitor",
	"Hydrological Monitor",
	"Environmental Monitor",
	"Seismic Monitor",
	"Surface Displacement Sensor",
	"Aerial Survey",
}

// Tab names a result view a device exposes in the console.
type Tab string

const (
	TabUploadedFiles   Tab = "Uploaded Files"
	TabTable           Tab = "Table"
	TabDifferentCharts Tab = "Different Charts"
	Tab3DView          Tab = "3D View"
	TabProcessing      Tab = "Processing"
	TabImages          Tab = "Images"
	TabAnalysis        Tab = "Analysis"
)

// Device represents one monitored instrument tracked by the registry.
type Device struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Status      DeviceStatus `json:"status"`
	ImportType  ImportType   `json:"importType"`
	APIURL      string       `json:"apiUrl"`
	Method      string       `json:"method"`
	Tabs        []Tab        `json:"tabs"`
	FolderName  string       `json:"folderName"`
	LastUpdated time.Time    `json:"lastUpdated"`

	UploadedFiles []FileRecord `json:"uploadedFiles"`
}

// DeviceDraft carries the user-supplied fields for a new device. The registry
// assigns the id and LastUpdated stamp.
type DeviceDraft struct {
	Name       string       `json:"name"`
	Type       string       `json:"type"`
	Status     DeviceStatus `json:"status"`
	ImportType ImportType   `json:"importType"`
	APIURL     string       `json:"apiUrl"`
	Method     string       `json:"method"`
	Tabs       []Tab        `json:"tabs"`
	FolderName string       `json:"folderName"`
}

// ConfigPatch is the subset of device fields the config dialog may change.
type ConfigPatch struct {
	APIURL string `json:"apiUrl"`
	Method string `json:"method"`
}
