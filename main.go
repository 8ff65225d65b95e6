package main

import (
	"os"

	"imagegen/cmd"
)

// @title           ImageGen Plugin Gateway API
// @version         1.0
// @description     LobeChat 文生图插件网关：SiliconFlow、xAI、智谱AI
// @BasePath        /
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
