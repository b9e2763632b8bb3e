package config

import (
	_ "embed"
	"time"
)

//go:embed param_default.yaml
var ParamDefaultFile []byte

type ServerParam struct {
	RoomFile         string   `yaml:"room_file"`
	ScheduleFile     string   `yaml:"schedule_file"`
	EventFolder      string   `yaml:"event_folder"`
	EventExtension   string   `yaml:"event_extension"`
	FontFile         string   `yaml:"font_file"`
	HeaderText       string   `yaml:"header_text"`
	Timezone         string   `yaml:"timezone"`
	RefreshInterval  int64    `yaml:"refresh_interval"`
	SimulationFolder string   `yaml:"simulation_folder"`
	EpdParam         EpdParam `yaml:"epd"`
}

// EpdParam wires the e-paper HAT: pins are periph gpioreg names
type EpdParam struct {
	SpiPort string `yaml:"spi_port"`
	SpeedHz int64  `yaml:"speed_hz"`
	RstPin  string `yaml:"rst_pin"`
	DcPin   string `yaml:"dc_pin"`
	BusyPin string `yaml:"busy_pin"`
	PwrPin  string `yaml:"pwr_pin"`
}

const defaultRefreshInterval = 900 * time.Second

func (p *ServerParam) GetRefreshInterval() time.Duration {
	if p.RefreshInterval <= 0 {
		return defaultRefreshInterval
	}
	return time.Duration(p.RefreshInterval) * time.Second
}
