package main

import (
	"log"
	"os"

	"github.com/javerous/SMXcode/project"
)

// This program opens an Xcode project, adds a header and a source file
// under the group matching their directory (creating intermediate groups
// as needed), and writes the project back out.
func main() {
	projectPath := "project.pbxproj"
	if len(os.Args) > 1 {
		projectPath = os.Args[1]
	}

	p, err := project.LoadFile(projectPath)
	if err != nil {
		log.Fatal(err)
	}

	root := p.RootObject()
	if root == nil {
		log.Fatal("project has no rootObject")
	}
	targets := root.Content().GetArray("targets")
	if targets == nil || targets.Len() == 0 {
		log.Fatal("project has no targets")
	}
	firstTarget, _ := targets.Items()[0].(project.Literal)
	target := firstTarget.Target()
	if target == nil {
		log.Fatal("could not resolve the project's first target")
	}

	group, err := p.GroupFor(p.Directory(), true)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := p.AddHeaderFile(group, target, "foo.h"); err != nil {
		log.Fatal(err)
	}
	if _, err := p.AddSourceFile(group, target, "foo.m"); err != nil {
		log.Fatal(err)
	}
	if _, err := p.AddFramework(target, "FooKit"); err != nil {
		log.Fatal(err)
	}

	if err := p.Write(""); err != nil {
		log.Fatal(err)
	}
}
