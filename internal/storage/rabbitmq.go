package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"resume-analyzer-go/internal/config"
)

// RabbitMQ 消息队列适配器。
// 上传入口把消息发到事件交换机，分析消费者从绑定的队列取活。
type RabbitMQ struct {
	conn      *amqp.Connection
	pubCh     *amqp.Channel
	pubMu     sync.Mutex
	cfg       *config.RabbitMQConfig
	closeOnce sync.Once
	closed    chan struct{}
}

// NewRabbitMQ 建立连接并声明交换机、队列和绑定
func NewRabbitMQ(cfg *config.RabbitMQConfig) (*RabbitMQ, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("RabbitMQ URL不能为空")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建RabbitMQ通道失败: %w", err)
	}

	r := &RabbitMQ{
		conn:   conn,
		pubCh:  ch,
		cfg:    cfg,
		closed: make(chan struct{}),
	}
	if err := r.declareTopology(ch); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// declareTopology 声明交换机、分析队列和绑定关系
func (r *RabbitMQ) declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(
		r.cfg.ResumeEventsExchange,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("声明交换机 %s 失败: %w", r.cfg.ResumeEventsExchange, err)
	}

	if _, err := ch.QueueDeclare(
		r.cfg.AnalysisQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("声明队列 %s 失败: %w", r.cfg.AnalysisQueue, err)
	}

	if err := ch.QueueBind(
		r.cfg.AnalysisQueue,
		r.cfg.UploadedRoutingKey,
		r.cfg.ResumeEventsExchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("绑定队列 %s 失败: %w", r.cfg.AnalysisQueue, err)
	}
	return nil
}

// Close 关闭通道和连接
func (r *RabbitMQ) Close() error {
	r.closeOnce.Do(func() { close(r.closed) })
	if r.pubCh != nil {
		r.pubCh.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// PublishUploadMessage 发布简历上传消息，持久化投递
func (r *RabbitMQ) PublishUploadMessage(ctx context.Context, msg *ResumeUploadMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("序列化上传消息失败: %w", err)
	}

	r.pubMu.Lock()
	defer r.pubMu.Unlock()
	return r.pubCh.PublishWithContext(
		ctx,
		r.cfg.ResumeEventsExchange,
		r.cfg.UploadedRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// UploadMessageHandler 消费端处理函数。返回nil则ack；
// 返回错误时nack并不重新入队，避免毒消息打转。
type UploadMessageHandler func(ctx context.Context, msg *ResumeUploadMessage) error

// StartAnalysisConsumer 启动分析队列消费者。
// workers 控制并发处理协程数；阻塞直到 ctx 取消或连接关闭。
func (r *RabbitMQ) StartAnalysisConsumer(ctx context.Context, workers int, handler UploadMessageHandler) error {
	if workers <= 0 {
		workers = 1
	}

	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("创建消费者通道失败: %w", err)
	}
	defer ch.Close()

	prefetch := r.cfg.PrefetchCount
	if prefetch <= 0 {
		prefetch = workers
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("设置Qos失败: %w", err)
	}

	deliveries, err := ch.Consume(
		r.cfg.AnalysisQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("启动消费失败: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(worker int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case <-r.closed:
					return
				case d, ok := <-deliveries:
					if !ok {
						return
					}
					r.handleDelivery(ctx, worker, d, handler)
				}
			}
		}(i)
	}
	wg.Wait()
	return nil
}

func (r *RabbitMQ) handleDelivery(ctx context.Context, worker int, d amqp.Delivery, handler UploadMessageHandler) {
	var msg ResumeUploadMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		log.Printf("[RabbitMQ] worker=%d 消息反序列化失败，丢弃: %v", worker, err)
		_ = d.Nack(false, false)
		return
	}

	if err := handler(ctx, &msg); err != nil {
		log.Printf("[RabbitMQ] worker=%d 处理消息失败 uuid=%s: %v", worker, msg.SubmissionUUID, err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}
