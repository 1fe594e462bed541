package main

import (
	"fmt"
	"log"
	"os"

	"github.com/javerous/SMXcode/workspace"
	"github.com/javerous/SMXcode/xcconfig"
)

// This program appends a project reference to an Xcode workspace and
// prints a build setting resolved through a configuration file's include
// chain.
func main() {
	workspacePath := "MyApp.xcworkspace"
	if len(os.Args) > 1 {
		workspacePath = os.Args[1]
	}

	w, err := workspace.LoadFile(workspacePath)
	if err != nil {
		log.Fatal(err)
	}
	w.Append("Pods/Pods.xcodeproj", false)
	if err := w.Write(""); err != nil {
		log.Fatal(err)
	}
	for _, ref := range w.ProjectReferences() {
		fmt.Println("project reference:", ref.URL)
	}

	configPath := "Release.xcconfig"
	if len(os.Args) > 2 {
		configPath = os.Args[2]
	}
	cfg, err := xcconfig.LoadFile(configPath, true)
	if err != nil {
		log.Fatal(err)
	}
	if values, ok := cfg.ValueForKey("PRODUCT_BUNDLE_IDENTIFIER", "*", "*", "*"); ok {
		fmt.Println("PRODUCT_BUNDLE_IDENTIFIER:", values)
	}
}
