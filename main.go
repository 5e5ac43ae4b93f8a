package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var wg sync.WaitGroup

// tixclock -config={config file} [-sim] [-preview]

func main() {
	cfgFile := flag.String("config", "/etc/tixclock.conf", "Config file path")
	sim := flag.Bool("sim", false, "Simulate the board")
	preview := flag.Bool("preview", false, "Draw the simulated board in the terminal")
	dump := flag.Bool("dump", false, "Log the simulated board")
	flag.Parse()

	settings := initSettings(*cfgFile)
	if *sim || *preview {
		settings.Set(sSimulated, true)
	}
	if *preview {
		settings.Set(sPreview, true)
	}
	if *dump {
		settings.Set(sDebug, true)
	}

	lj := setupLogging(settings, !settings.GetBool(sPreview))
	defer lj.Close()

	if compiled, err := buildTime(); err == nil {
		log.Printf("Current Date Time: %s", compiled.Format("Jan 02 2006 15:04:05"))
	}
	settings.Dump()

	rt, err := initRuntime(settings)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer rt.close()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Printf("Got signal %v, stopping", sig)
			rt.comms.stop()
		case <-rt.comms.quit:
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runDisplay(rt)
	}()
	wg.Wait()
}
