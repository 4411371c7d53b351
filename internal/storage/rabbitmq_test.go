package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleDelivery_ValidMessage(t *testing.T) {
	msg := ResumeUploadMessage{
		SubmissionUUID:      "11111111-2222-3333-4444-555555555555",
		SubmissionTimestamp: time.Now(),
		OriginalFilename:    "resume.pdf",
		ParsedText:          "Jane Doe\njane@x.com",
	}
	body, err := json.Marshal(&msg)
	require.NoError(t, err)

	var received *ResumeUploadMessage
	r := &RabbitMQ{}
	r.handleDelivery(context.Background(), 0, amqp.Delivery{Body: body}, func(ctx context.Context, m *ResumeUploadMessage) error {
		received = m
		return nil
	})

	require.NotNil(t, received, "合法消息应交给处理函数")
	assert.Equal(t, msg.SubmissionUUID, received.SubmissionUUID)
	assert.Equal(t, msg.ParsedText, received.ParsedText)
}

func TestHandleDelivery_MalformedBodySkipsHandler(t *testing.T) {
	called := false
	r := &RabbitMQ{}
	r.handleDelivery(context.Background(), 0, amqp.Delivery{Body: []byte("not json")}, func(ctx context.Context, m *ResumeUploadMessage) error {
		called = true
		return nil
	})
	assert.False(t, called, "无法解析的消息不应进入处理函数")
}

func TestHandleDelivery_HandlerErrorDoesNotPanic(t *testing.T) {
	body, _ := json.Marshal(&ResumeUploadMessage{SubmissionUUID: "u"})
	r := &RabbitMQ{}
	assert.NotPanics(t, func() {
		r.handleDelivery(context.Background(), 0, amqp.Delivery{Body: body}, func(ctx context.Context, m *ResumeUploadMessage) error {
			return errors.New("downstream failure")
		})
	})
}
