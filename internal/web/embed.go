package web

import "embed"

//go:embed templates/*.html static/*
var contentFS embed.FS
