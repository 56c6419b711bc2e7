package db

// Snapshot rows. Each row holds one core entity serialized as JSON, plus the
// columns needed to restore ordering on load. The core's persistence contract
// is whole-snapshot save, so rows are replaced wholesale inside one
// transaction and readers never observe a partial state.

type AccountRow struct {
	ID       string `gorm:"primaryKey"`
	Position int    `gorm:"index"`
	Data     []byte `gorm:"type:jsonb"`
}

type RequestRow struct {
	ID       string `gorm:"primaryKey"`
	Position int    `gorm:"index"`
	Data     []byte `gorm:"type:jsonb"`
}

type MessageRow struct {
	ID       string `gorm:"primaryKey"`
	Key      string `gorm:"index"`
	Position int    `gorm:"index"`
	Data     []byte `gorm:"type:jsonb"`
}

type ServerRow struct {
	ID       string `gorm:"primaryKey"`
	Position int    `gorm:"index"`
	Data     []byte `gorm:"type:jsonb"`
}

func (AccountRow) TableName() string { return "accounts" }

func (RequestRow) TableName() string { return "friend_requests" }

func (MessageRow) TableName() string { return "messages" }

func (ServerRow) TableName() string { return "servers" }
