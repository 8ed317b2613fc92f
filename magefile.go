//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

// Build compiles every executable. libhdf5 is found through CGO_CFLAGS and
// CGO_LDFLAGS.
func Build() error {
	mg.Deps(BuildClusterer)
	mg.Deps(BuildMeasureCompression)
	fmt.Println("Compilation finished")
	return nil
}

func BuildClusterer() error {
	fmt.Println("Building clusterer executable...")
	return goBuild("./bin/clusterer", "./clusterer")
}

func BuildMeasureCompression() error {
	fmt.Println("Building measureCompression executable...")
	return goBuild("./bin/measureCompression", "./measureCompression")
}

// Test runs the unit tests of every package.
func Test() error {
	fmt.Println("Running tests...")
	cmd := exec.Command("go", "test", "./...")
	cmd.Env = cgoEnv()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func goBuild(output string, pkg string) error {
	cmd := exec.Command("go", "build", "-o", output, pkg)
	cmd.Env = cgoEnv()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func cgoEnv() []string {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	return append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
}
