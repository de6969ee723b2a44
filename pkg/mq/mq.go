// Package mq RabbitMQ消息发布与消费
//
// 使用Topic Exchange，路由键形如order.created、order.cancelled，
// 消费者可以用order.*订阅全部订单事件。
package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ExchangeTopic 默认的Exchange类型
const ExchangeTopic = "topic"

// Publisher 消息发布者
// amqp.Channel不是并发安全的，发布时加锁
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *zap.Logger

	mu sync.Mutex
}

// NewPublisher 连接RabbitMQ并声明持久化的Exchange
func NewPublisher(url, exchange, exchangeType string, log *zap.Logger) (*Publisher, error) {
	conn, channel, err := open(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}

	log.Info("mq publisher ready", zap.String("exchange", exchange), zap.String("type", exchangeType))

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		log:      log,
	}, nil
}

// Exchange 发布目标Exchange名称
func (p *Publisher) Exchange() string {
	return p.exchange
}

// Publish 以JSON格式发布持久化消息
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	p.log.Debug("message published", zap.String("routing_key", routingKey), zap.Int("bytes", len(body)))
	return nil
}

// Close 关闭Channel和连接
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return closeAll(p.channel, p.conn)
}

// Consumer 消息消费者（手动Ack）
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     *zap.Logger
}

// NewConsumer 声明持久化队列并按routingKeys绑定到Exchange
func NewConsumer(url, exchange, exchangeType, queue string, routingKeys []string, log *zap.Logger) (*Consumer, error) {
	conn, channel, err := open(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}

	q, err := channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = closeAll(channel, conn)
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	for _, key := range routingKeys {
		if err := channel.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			_ = closeAll(channel, conn)
			return nil, fmt.Errorf("bind queue %s: %w", key, err)
		}
	}

	return &Consumer{conn: conn, channel: channel, queue: q.Name, log: log}, nil
}

// Consume 逐条处理消息直到ctx取消
// handler返回error时Nack并重新入队
func (c *Consumer) Consume(ctx context.Context, handler func(routingKey string, body []byte) error) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			if err := handler(msg.RoutingKey, msg.Body); err != nil {
				c.log.Warn("message handling failed, requeue",
					zap.String("routing_key", msg.RoutingKey), zap.Error(err))
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

// Close 关闭Channel和连接
func (c *Consumer) Close() error {
	return closeAll(c.channel, c.conn)
}

func open(url, exchange, exchangeType string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		_ = closeAll(channel, conn)
		return nil, nil, fmt.Errorf("declare exchange: %w", err)
	}

	return conn, channel, nil
}

func closeAll(channel *amqp.Channel, conn *amqp.Connection) error {
	var errs []error
	if channel != nil {
		if err := channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
