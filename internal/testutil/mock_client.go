package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/palemoky/trix-online/internal/protocol"
)

// MockClient 实现 types.ClientInterface 的 mock
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetNickname() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetNickname(name string) {
	m.Called(name)
}

func (m *MockClient) GetRoom() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetRoom(roomCode string) {
	m.Called(roomCode)
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Called(msg)
}

func (m *MockClient) Close() {
	m.Called()
}

// SimpleClient 简单的捕获型客户端，不使用 testify（用于不需要断言调用次数的测试）
type SimpleClient struct {
	ID       string
	Nickname string
	RoomCode string
	Messages []*protocol.Message
}

func (c *SimpleClient) GetID() string           { return c.ID }
func (c *SimpleClient) GetNickname() string     { return c.Nickname }
func (c *SimpleClient) SetNickname(name string) { c.Nickname = name }
func (c *SimpleClient) GetRoom() string         { return c.RoomCode }
func (c *SimpleClient) SetRoom(code string)     { c.RoomCode = code }
func (c *SimpleClient) SendMessage(msg *protocol.Message) {
	c.Messages = append(c.Messages, msg)
}
func (c *SimpleClient) Close() {}

// MessagesOfType 过滤指定类型的消息
func (c *SimpleClient) MessagesOfType(msgType protocol.MessageType) []*protocol.Message {
	var out []*protocol.Message
	for _, msg := range c.Messages {
		if msg.Type == msgType {
			out = append(out, msg)
		}
	}
	return out
}

// LastMessage 返回最后一条消息，没有则返回 nil
func (c *SimpleClient) LastMessage() *protocol.Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}
