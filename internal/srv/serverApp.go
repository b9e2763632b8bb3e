package srv

import (
	"github.com/jypelle/roomsign/internal/render"
	"github.com/jypelle/roomsign/internal/schedule"
	"github.com/jypelle/roomsign/internal/slideshow"
	"github.com/jypelle/roomsign/internal/srv/config"
	"github.com/jypelle/roomsign/internal/srv/device"
	"github.com/jypelle/roomsign/internal/version"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"time"
)

var ErrNoRoomId = errors.New("no room id found")

type ServerApp struct {
	*config.ServerConfig
	displayDevice device.Display
	clockDevice   *device.Clock

	scheduleRepository *schedule.Repository
	renderer           *render.Renderer
	slideshow          *slideshow.Rotator
	roomId             string

	currentMode Mode

	eventLoopAskDone chan bool
	eventLoopDone    chan bool
}

type Mode int64

const (
	INIT_MODE Mode = iota
	RUNNING_MODE
	SHUTDOWN_MODE
)

func NewServerApp(serverConfig *config.ServerConfig, mirrors ...device.Mirror) *ServerApp {
	displayDevice, err := device.NewDisplay(serverConfig, mirrors...)
	if err != nil {
		logrus.Fatalf("Unable to open display: %v\n", err)
	}
	clockDevice := device.NewClock(serverConfig.Location(), serverConfig.GetRefreshInterval())

	return newServerApp(serverConfig, displayDevice, clockDevice)
}

func newServerApp(serverConfig *config.ServerConfig, displayDevice device.Display, clockDevice *device.Clock) *ServerApp {
	logrus.Debugf("Creation of %s server %s ...", version.AppName, version.AppVersion.String())

	app := &ServerApp{
		ServerConfig:     serverConfig,
		displayDevice:    displayDevice,
		clockDevice:      clockDevice,
		currentMode:      INIT_MODE,
		eventLoopAskDone: make(chan bool),
		eventLoopDone:    make(chan bool),
		scheduleRepository: schedule.NewRepository(
			serverConfig.Fs,
			serverConfig.GetCompleteScheduleFilename(),
		),
		renderer: render.NewRenderer(
			serverConfig.Fs,
			serverConfig.GetCompleteFontFilename(),
			serverConfig.HeaderText,
			displayDevice.Bounds(),
		),
	}

	logrus.Debugln("Server created")

	return app
}

// Start leaves INIT_MODE: nothing reaches the display when the room id is missing
func (s *ServerApp) Start() error {
	logrus.Printf("Starting %s server ...", version.AppName)

	if err := s.loadRoom(); err != nil {
		return err
	}

	logrus.Printf("Starting devices ...")

	if err := s.displayDevice.Init(); err != nil {
		return errors.Wrap(err, "unable to init display")
	}
	if err := s.displayDevice.Clear(); err != nil {
		logrus.Warnf("Unable to clear display: %v", err)
	}

	s.loadSlideshow()

	s.currentMode = RUNNING_MODE

	// Start event loop
	go s.eventLoop()

	// Start clock device
	s.clockDevice.Start()

	return nil
}

func (s *ServerApp) Stop() {
	logrus.Printf("Stopping %s server ...", version.AppName)

	if s.currentMode == RUNNING_MODE {
		// Stop clock device
		s.clockDevice.StopSendingEvent()

		// Stop event loop
		logrus.Infof("Stop event loop")
		s.eventLoopAskDone <- true
		<-s.eventLoopDone
	}

	s.currentMode = SHUTDOWN_MODE
	s.shutdownDisplay()

	logrus.Printf("Server stopped")
}

// Preview computes the frame the sign would show at now, without any device
func (s *ServerApp) Preview(now time.Time) (Frame, error) {
	if err := s.loadRoom(); err != nil {
		return Frame{}, err
	}
	s.loadSlideshow()
	return s.nextFrame(now), nil
}

func (s *ServerApp) loadRoom() error {
	roomId, ok := config.LoadRoomId(s.Fs, s.GetCompleteRoomFilename())
	if !ok {
		return ErrNoRoomId
	}
	s.roomId = roomId
	return nil
}

func (s *ServerApp) loadSlideshow() {
	s.slideshow = slideshow.NewRotator(slideshow.Scan(s.Fs, s.GetCompleteEventFolder(), s.EventExtension))
	logrus.Infof("Slideshow of %d event images", s.slideshow.Len())
}

// shutdownDisplay wakes the panel up, blanks it and puts it in deep sleep. Failures are only logged.
func (s *ServerApp) shutdownDisplay() {
	steps := []struct {
		name string
		run  func() error
	}{
		{"init", s.displayDevice.Init},
		{"clear", s.displayDevice.Clear},
		{"sleep", s.displayDevice.Sleep},
		{"close", s.displayDevice.Close},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			logrus.Warnf("Display %s failed during shutdown: %v", step.name, err)
		}
	}
}
