package models

// RedisStats is the diagnostics snapshot returned by GET /api/redis/stats.
// Metric fields are meaningful only when Status == StatusConnected; for any
// other status the server sends the status string alone.
type RedisStats struct {
	Status                   string `json:"status"`
	RedisVersion             string `json:"redis_version,omitempty"`
	ConnectedClients         int64  `json:"connected_clients,omitempty"`
	UsedMemoryHuman          string `json:"used_memory_human,omitempty"`
	TotalConnectionsReceived int64  `json:"total_connections_received,omitempty"`
	Keyspace                 int64  `json:"keyspace,omitempty"`
}

// StatusConnected is the only status under which metric fields are rendered.
const StatusConnected = "connected"

// Connected reports whether the cache layer was reachable when the snapshot
// was taken.
func (s *RedisStats) Connected() bool {
	return s.Status == StatusConnected
}
