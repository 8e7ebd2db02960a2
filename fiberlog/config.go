package fiberlog

import "github.com/sirupsen/logrus"

// Config настраивает журналирование http-запросов
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

// ConfigDefault применяется, если сервис не передал свой набор тегов
var ConfigDefault Config = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		TagIP,
		RequestID,
	},
}
