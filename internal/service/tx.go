package service

import "context"

// TxRepositories provides transaction-bound repositories. All writes staged
// through them become durable together when the transaction commits.
type TxRepositories interface {
	Rooms() RoomRepositoryInterface
	Questions() QuestionRepositoryInterface
	Chunks() ChunkRepositoryInterface
}

// TxRunner executes a function within a transaction. It is the only
// durability boundary the services use: fn's staged writes are committed
// atomically, or rolled back if fn returns an error.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(repos TxRepositories) error) error
}
