package logger

import (
	"go.uber.org/zap"
)

var Log *zap.Logger = zap.NewNop()

func InitLogger() {
	var err error
	Log, err = zap.NewProduction()
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
}

func SyncLogger() {
	_ = Log.Sync()
}
