package riffinfo

const (
	LibName = "go-riffinfo"
	Version = "0.1.0"
)
