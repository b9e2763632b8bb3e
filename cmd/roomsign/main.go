package main

import (
	"fmt"
	"github.com/jypelle/roomsign/internal/srv"
	"github.com/jypelle/roomsign/internal/srv/config"
	"github.com/jypelle/roomsign/internal/srv/device"
	"github.com/jypelle/roomsign/internal/srv/device/window"
	"github.com/jypelle/roomsign/internal/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
)

func main() {

	// Logger
	logrus.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	mainCommand := filepath.Base(os.Args[0])

	// region Flags and Commands definition

	// Debug Mode
	debugMode := flag.BoolP("debug", "d", false, "Enable debug mode")

	// Simulation Mode
	simulationMode := flag.BoolP("simulation", "s", false, "Write frames to png files instead of the e-paper display")

	// User config dir
	defaultConfigDir := "./." + version.AppName
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		defaultConfigDir = filepath.Join(userConfigDir, version.AppName)
	}
	configDir := flag.StringP("config", "c", defaultConfigDir, "Location of "+version.AppName+" config folder")

	flag.CommandLine.SetInterspersed(false)

	// Usage
	flag.Usage = func() {
		fmt.Printf("\nUsage: %s [OPTIONS] [COMMAND]\n", mainCommand)
		fmt.Printf("\nAn e-paper room sign showing the class in session\n")
		fmt.Printf("\nOptions:\n")
		flag.PrintDefaults()
		fmt.Printf("\nCommands:\n")
		fmt.Printf("  run       Run the sign\n")
		fmt.Printf("  render    Render the current frame to a png file\n")
		fmt.Printf("  version   Show the version number\n")
		fmt.Printf("\nRun '%s COMMAND --help' for more information on a command.\n", mainCommand)
	}

	// run command
	runCmd := flag.NewFlagSet("run", flag.ExitOnError)

	runCmd.Usage = func() {
		fmt.Printf("\nUsage: %s run\n", mainCommand)
		fmt.Printf("\nRefresh the display until interrupted\n")
	}

	// render command
	renderCmd := flag.NewFlagSet("render", flag.ExitOnError)
	renderAt := renderCmd.StringP("at", "a", "", "Local time to render, as 2006-01-02T15:04 (default now)")

	renderCmd.Usage = func() {
		fmt.Printf("\nUsage: %s render [OPTIONS] FILE\n", mainCommand)
		fmt.Printf("\nWrite the frame the sign would display to a png file\n")
		fmt.Printf("\nOptions:\n")
		renderCmd.PrintDefaults()
	}

	// version command
	versionCmd := flag.NewFlagSet("version", flag.ExitOnError)

	versionCmd.Usage = func() {
		fmt.Printf("\nUsage: %s version\n", mainCommand)
		fmt.Printf("\nShow the version information\n")
	}

	// endregion

	// region Flags and Commands Parsing
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	switch flag.Arg(0) {
	case "run":
		runCmd.Parse(flag.Args()[1:])
		if runCmd.NArg() > 0 {
			fmt.Printf("\n\"%s %s\" accepts no arguments\n", mainCommand, flag.Arg(0))
			runCmd.Usage()
			os.Exit(1)
		}
	case "render":
		renderCmd.Parse(flag.Args()[1:])
		if renderCmd.NArg() != 1 {
			fmt.Printf("\n\"%s %s\" requires exactly one file\n", mainCommand, flag.Arg(0))
			renderCmd.Usage()
			os.Exit(1)
		}
	case "version":
		versionCmd.Parse(flag.Args()[1:])
		if versionCmd.NArg() > 0 {
			fmt.Printf("\n\"%s %s\" accepts no arguments\n", mainCommand, flag.Arg(0))
			versionCmd.Usage()
			os.Exit(1)
		}
	default:
		fmt.Printf("\n%s is not a %s command\n", flag.Args()[0], version.AppName)
		flag.Usage()
		os.Exit(1)
	}
	// endregion

	if versionCmd.Parsed() {
		fmt.Printf("Version %s\n", version.AppVersion.String())
		return
	}

	if *debugMode {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true, TimestampFormat: time.RFC3339Nano})
		logrus.Printf("Debug mode activated")
	}

	fs := afero.NewOsFs()

	if renderCmd.Parsed() {
		// Rendering never needs the panel
		serverConfig := config.NewServerConfig(fs, *configDir, *debugMode, true)
		render(serverConfig, *renderAt, renderCmd.Arg(0))
		return
	}

	serverConfig := config.NewServerConfig(fs, *configDir, *debugMode, *simulationMode)

	// Desktop window mirroring the simulated panel
	var mirrors []device.Mirror
	if *simulationMode {
		mirrors = append(mirrors, window.New(version.AppName, image.Rect(0, 0, device.DisplayWidth, device.DisplayHeight)))
	}

	// Create room sign server
	serverApp := srv.NewServerApp(serverConfig, mirrors...)

	// Listen stop signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)

	if err := serverApp.Start(); err != nil {
		logrus.Fatalf("Unable to start: %v", err)
	}

	sig := <-ch
	logrus.Infof("Received signal: %v", sig)
	serverApp.Stop()
}

func render(serverConfig *config.ServerConfig, at string, filename string) {
	now := time.Now().In(serverConfig.Location())
	if at != "" {
		var err error
		now, err = time.ParseInLocation("2006-01-02T15:04", at, serverConfig.Location())
		if err != nil {
			logrus.Fatalf("Unable to parse time %q: %v", at, err)
		}
	}

	serverApp := srv.NewServerApp(serverConfig)
	frame, err := serverApp.Preview(now)
	if err != nil {
		logrus.Fatalf("Unable to render: %v", err)
	}

	if err = device.WritePng(afero.NewOsFs(), filename, frame.Image); err != nil {
		logrus.Fatalf("Unable to save frame: %v", err)
	}
	logrus.Infof("Frame for %s written to %s", now.Format(time.RFC1123), filename)
}
