// Package main provides the S4 kernel library CLI.
package main

import (
	"fmt"
	"os"

	"github.com/Sequel-Institute/s4/backend/webgpu"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("S4 kernel library %s\n", version)
			return
		case "devices":
			printDevices()
			return
		}
	}

	fmt.Println("S4 - Structured State Space Kernels for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  devices    List available compute devices")
}

func printDevices() {
	fmt.Println("CPU: available (complex: yes)")

	if !webgpu.IsAvailable() {
		fmt.Println("WebGPU: not available")
		return
	}

	gpu, err := webgpu.New()
	if err != nil {
		fmt.Printf("WebGPU: initialization failed: %v\n", err)
		return
	}
	defer gpu.Release()

	fmt.Printf("%s: available (complex: no, use compat fallback)\n", gpu.Name())
}
