package registry

import "rockfall-console-backend/internal/model"

// defaultDevices is the instrument set a fresh console starts with.
func defaultDevices() []model.Device {
	standardTabs := []model.Tab{
		model.TabUploadedFiles, model.TabTable, model.TabImages, model.TabAnalysis,
	}
	return []model.Device{
		{
			ID:            1,
			Name:          "Extensometer Monitoring Station",
			Type:          "Surface Displacement Sensor",
			Status:        model.StatusOnline,
			ImportType:    model.ImportCSV,
			Tabs:          append([]model.Tab(nil), standardTabs...),
			FolderName:    "Extensometer",
			APIURL:        "https://api.rockfall.com/extensometer/station",
			Method:        "GET",
			UploadedFiles: []model.FileRecord{},
		},
		{
			ID:            2,
			Name:          "GB-InSAR Radar Station",
			Type:          "Ground Radar",
			Status:        model.StatusOnline,
			ImportType:    model.ImportCSV,
			Tabs:          append([]model.Tab(nil), standardTabs...),
			FolderName:    "GB-InSAR",
			APIURL:        "https://api.rockfall.com/gb-insar/station",
			Method:        "GET",
			UploadedFiles: []model.FileRecord{},
		},
		{
			ID:         3,
			Name:       "LiDAR Scanning Unit",
			Type:       "Optical Scanner",
			Status:     model.StatusOnline,
			ImportType: model.ImportLAS,
			Tabs: []model.Tab{
				model.TabUploadedFiles, model.Tab3DView, model.TabTable,
				model.TabImages, model.TabAnalysis,
			},
			FolderName:    "LiDAR",
			APIURL:        "https://api.rockfall.com/lidar/unit",
			Method:        "POST",
			UploadedFiles: []model.FileRecord{},
		},
		{
			ID:            4,
			Name:          "Piezometer Monitoring Node",
			Type:          "Hydrological Monitor",
			Status:        model.StatusOnline,
			ImportType:    model.ImportCSV,
			Tabs:          append([]model.Tab(nil), standardTabs...),
			FolderName:    "Piezometer",
			APIURL:        "https://api.rockfall.com/piezometer/node",
			Method:        "GET",
			UploadedFiles: []model.FileRecord{},
		},
		{
			ID:            5,
			Name:          "Geophone Sensor Array",
			Type:          "Seismic Monitor",
			Status:        model.StatusOnline,
			ImportType:    model.ImportCSV,
			Tabs:          append([]model.Tab(nil), standardTabs...),
			FolderName:    "Geophone",
			APIURL:        "https://api.rockfall.com/geophone/array",
			Method:        "POST",
			UploadedFiles: []model.FileRecord{},
		},
		{
			ID:            6,
			Name:          "Automated Weather Station",
			Type:          "Environmental Monitor",
			Status:        model.StatusOnline,
			ImportType:    model.ImportCSV,
			Tabs:          append([]model.Tab(nil), standardTabs...),
			FolderName:    "Auto_Weather_station",
			APIURL:        "https://api.rockfall.com/weather/station",
			Method:        "GET",
			UploadedFiles: []model.FileRecord{},
		},
	}
}
