// FILE: lixenwraith/ini/example/main.go
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lixenwraith/ini"
)

// PlayerSettings is the [player] section of the settings file.
type PlayerSettings struct {
	Language         string        `ini:"language"`
	Volume           int           `ini:"volume"`
	CrossFade        time.Duration `ini:"crossfade"`
	RatingConversion []int         `ini:"rating_conversion"`
	Window           struct {
		Width     int  `ini:"width"`
		Height    int  `ini:"height"`
		Maximized bool `ini:"maximized"`
	} `ini:"window"`
}

const settingsFilePath = "settings.ini"

func main() {
	// =========================================================================
	// PART 1: INITIAL SETUP
	// Write a hand-edited settings file for the program to read.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 1: Creating initial settings file...")

	defer func() {
		log.Println("---")
		log.Println("🧹 Cleaning up...")
		os.Remove(settingsFilePath)
		log.Printf("Removed %s.", settingsFilePath)
	}()

	initial := `; written by hand
[player]
language=en
volume=70
rating_conversion=0
rating_conversion=64
rating_conversion=128

[recent]
file=/music/a.mp3
file=/music/b.mp3
`
	if err := os.WriteFile(settingsFilePath, []byte(initial), 0644); err != nil {
		log.Fatalf("❌ Failed during initial file creation: %v", err)
	}
	log.Printf("✅ Initial settings saved to %s.", settingsFilePath)

	// =========================================================================
	// PART 2: LOADING WITH THE BUILDER
	// Defaults fill the gaps, command-line flags override the file.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 2: Loading settings with the Builder...")

	defaults := PlayerSettings{Language: "en", Volume: 50, CrossFade: 2 * time.Second}
	defaults.Window.Width = 1024
	defaults.Window.Height = 768

	validator := func(d *ini.Document) error {
		if v := d.Int("player", "volume", 0); v < 0 || v > 100 {
			return fmt.Errorf("volume %d is outside 0-100", v)
		}
		return nil
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var player PlayerSettings
	doc, err := ini.NewBuilder().
		WithLogger(logger).
		WithFile(settingsFilePath).
		WithDefaults("player", defaults).
		WithArgs([]string{"--player.volume=85", "--player.window.maximized"}).
		WithValidator(validator).
		BuildAndScan("player", &player)
	if err != nil {
		log.Fatalf("❌ Builder failed: %v", err)
	}

	log.Println("✅ Builder finished successfully.")
	printCurrentState(&player, "Initial State (flags override file, defaults fill gaps)")
	log.Printf("   Recent files: %v", doc.Values("recent", "file"))

	// =========================================================================
	// PART 3: UPDATING AND SAVING SESSION STATE
	// Change a few values, save, and read the file back.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 3: Updating session state...")

	player.Window.Width = 1920
	player.RatingConversion = append(player.RatingConversion, 255)
	if err := doc.SetStruct("player", &player); err != nil {
		log.Fatalf("❌ SetStruct failed: %v", err)
	}
	if err := doc.SetValues("recent", "file", []string{"/music/c.mp3"}, true); err != nil {
		log.Fatalf("❌ SetValues failed: %v", err)
	}
	if err := doc.Save(settingsFilePath); err != nil {
		log.Fatalf("❌ Save failed: %v", err)
	}

	reloaded, err := ini.Load(settingsFilePath)
	if err != nil {
		log.Fatalf("❌ Reload failed: %v", err)
	}
	if !reloaded.Equal(doc) {
		log.Fatalf("❌ VERIFICATION FAILED: reloaded document differs from the saved one.")
	}
	log.Println("✅ VERIFICATION SUCCESSFUL: saved file reads back unchanged.")
	log.Printf("   Width on disk: %d", reloaded.Int("player", "window.width", 0))
	log.Printf("   Ratings on disk: %v", reloaded.Ints("player", "rating_conversion"))

	fmt.Println("---")
	fmt.Print(reloaded.String())
}

// printCurrentState displays the scanned settings.
func printCurrentState(p *PlayerSettings, title string) {
	log.Println("   --- " + title + " ---")
	log.Printf("     Language:  %s", p.Language)
	log.Printf("     Volume:    %d", p.Volume)
	log.Printf("     CrossFade: %s", p.CrossFade)
	log.Printf("     Ratings:   %v", p.RatingConversion)
	log.Printf("     Window:    %dx%d (maximized: %t)", p.Window.Width, p.Window.Height, p.Window.Maximized)
	log.Println("   ---------------------------------")
}