package main

import (
	_ "github.com/eleven-am/video-rooms/docs"
	"github.com/eleven-am/video-rooms/internal/bootstrap"
)

// @title Video Rooms API
// @version 1.0.0
// @description Issues video access tokens and manages rooms and participants on the configured video vendor

// @BasePath /

func main() {
	bootstrap.Run()
}
