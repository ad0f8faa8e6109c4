package main

import (
	"log"
	"time"
)

// loopSafely runs f forever. A panic in f gets logged and the loop restarts
// after a short pause so a flaky poll does not take the whole bridge down.
func loopSafely(f func()) {
	defer func() {
		if v := recover(); v != nil {
			log.Printf("Panic: %v, restarting", v)
			time.Sleep(time.Second)
			go loopSafely(f)
		}
	}()

	for {
		f()
	}
}
