package engine

import (
	"fmt"
	"time"

	"station-core/pkg/api"

	"github.com/sirupsen/logrus"
)

// maxLogs - сколько последних записей хранит симуляция.
const maxLogs = 200

// AddLog добавляет лог в историю симуляции
func (s *Simulation) AddLog(text, logType string) {
	s.seq++
	entry := api.LogEntry{
		ID:        fmt.Sprintf("%d_%d", s.CurrentTick, s.seq),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	}

	s.Logs = append(s.Logs, entry)
	if len(s.Logs) > maxLogs {
		s.Logs = append(s.Logs[:0], s.Logs[len(s.Logs)-maxLogs:]...)
	}

	s.log.WithFields(logrus.Fields{
		"tick":      s.CurrentTick,
		"component": "game_log",
		"log_type":  logType,
	}).Info(text)

	if s.logSink != nil {
		s.logSink(entry)
	}
}
