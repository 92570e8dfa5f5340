package main

type UserCreatedEvent struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

type UserDeletedEvent struct {
	UID string `json:"uid"`
}

type WriteChargeRequest struct {
	Amount int64 `json:"amount"`
}
