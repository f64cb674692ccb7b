// Package mqtt provides MQTT communication capabilities for the bot.
// It publishes moderation events and answers request/response queries from
// dashboards and other services.
package mqtt

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	requestPrefix  = "pancy/request/"
	responsePrefix = "pancy/response/"
	publishTimeout = 5 * time.Second
)

// MqttRequest represents an MQTT request message
type MqttRequest struct {
	CorrelationID string      `json:"correlationId"`
	Payload       interface{} `json:"payload,omitempty"`
}

// MqttResponse represents an MQTT response message
type MqttResponse struct {
	CorrelationID string      `json:"correlationId"`
	Data          interface{} `json:"data"`
	Error         string      `json:"error,omitempty"`
}

// RequestHandler is a function type for handling MQTT requests
type RequestHandler func(payload map[string]interface{}) (interface{}, error)

type route struct {
	pattern string
	handler RequestHandler
}

// MqttCommunicator handles MQTT communication
type MqttCommunicator struct {
	client           mqtt.Client
	responseHandlers map[string]func(MqttResponse)
	routes           []route
	routed           bool
	mu               sync.RWMutex
	clientID         string
}

var (
	communicator *MqttCommunicator
	once         sync.Once
)

// Init initializes the global MQTT communicator
func Init(host, port, username, password, clientID string) *MqttCommunicator {
	once.Do(func() {
		communicator = NewMqttCommunicator(host, port, username, password, clientID)
	})
	return communicator
}

// Get returns the global MQTT communicator
func Get() *MqttCommunicator {
	return communicator
}

// NewMqttCommunicator creates a new MQTT communicator and starts connecting.
// The client keeps retrying in the background when the broker is down.
func NewMqttCommunicator(host, port, username, password, clientID string) *MqttCommunicator {
	mc := &MqttCommunicator{
		responseHandlers: make(map[string]func(MqttResponse)),
		clientID:         clientID,
	}

	uniqueID := fmt.Sprintf("%s_%s", clientID, uuid.New().String())

	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%s", host, port)).
		SetClientID(uniqueID).
		SetUsername(username).
		SetPassword(password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c mqtt.Client) {
			logger.Success(fmt.Sprintf("Conectado al broker MQTT como %s", clientID), "MQTT")
			mc.resubscribe()
		}).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			logger.Error(fmt.Sprintf("Conexión MQTT perdida: %v", err), "MQTT")
		})

	mc.client = mqtt.NewClient(opts)

	token := mc.client.Connect()
	if token.WaitTimeout(publishTimeout) && token.Error() != nil {
		logger.Error(fmt.Sprintf("Error de conexión MQTT: %v", token.Error()), "MQTT")
	}

	return mc
}

// Destroy closes the MQTT connection
func (mc *MqttCommunicator) Destroy() {
	if mc.client != nil && mc.client.IsConnected() {
		mc.client.Disconnect(250)
		logger.System("Conexión MQTT cerrada exitosamente.", "MQTT")
	} else {
		logger.Warn("El cliente MQTT no estaba conectado, no se necesita cerrar.", "MQTT")
	}
}

// IsConnected returns true if connected to the broker
func (mc *MqttCommunicator) IsConnected() bool {
	return mc.client != nil && mc.client.IsConnected()
}

// Publish sends a JSON message to a topic
func (mc *MqttCommunicator) Publish(topic string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	token := mc.client.Publish(topic, 0, false, jsonData)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to '%s' timed out", topic)
	}
	return token.Error()
}

// Request sends a request and waits for a response
func (mc *MqttCommunicator) Request(topic string, payload interface{}, timeout time.Duration) (interface{}, error) {
	correlationID := uuid.New().String()
	requestTopic := requestPrefix + topic
	responseTopic := fmt.Sprintf("%s%s/%s", responsePrefix, topic, correlationID)

	responseChan := make(chan MqttResponse, 1)
	errChan := make(chan error, 1)

	mc.mu.Lock()
	mc.responseHandlers[correlationID] = func(response MqttResponse) {
		select {
		case responseChan <- response:
		default:
		}
	}
	mc.mu.Unlock()

	defer func() {
		mc.mu.Lock()
		delete(mc.responseHandlers, correlationID)
		mc.mu.Unlock()
		mc.client.Unsubscribe(responseTopic)
	}()

	token := mc.client.Subscribe(responseTopic, 0, func(c mqtt.Client, msg mqtt.Message) {
		var response MqttResponse
		if err := json.Unmarshal(msg.Payload(), &response); err != nil {
			select {
			case errChan <- err:
			default:
			}
			return
		}

		mc.mu.RLock()
		handler, exists := mc.responseHandlers[response.CorrelationID]
		mc.mu.RUnlock()

		if exists {
			handler(response)
		}
	})

	if token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}

	request := MqttRequest{
		CorrelationID: correlationID,
		Payload:       payload,
	}

	if err := mc.Publish(requestTopic, request); err != nil {
		return nil, err
	}

	select {
	case response := <-responseChan:
		if response.Error != "" {
			return nil, fmt.Errorf("%s", response.Error)
		}
		return response.Data, nil
	case err := <-errChan:
		return nil, err
	case <-time.After(timeout):
		return nil, fmt.Errorf("la petición a '%s' ha expirado (timeout)", topic)
	}
}

// On registers a handler for a request topic pattern. Patterns may use the
// MQTT wildcards, e.g. "moderation/+". All routes share one subscription.
func (mc *MqttCommunicator) On(pattern string, callback RequestHandler) {
	mc.mu.Lock()
	mc.routes = append(mc.routes, route{pattern: pattern, handler: callback})
	first := !mc.routed
	mc.routed = true
	mc.mu.Unlock()

	if first && mc.IsConnected() {
		mc.subscribeRequests()
	}
}

func (mc *MqttCommunicator) resubscribe() {
	mc.mu.RLock()
	routed := mc.routed
	mc.mu.RUnlock()

	if routed {
		mc.subscribeRequests()
	}
}

func (mc *MqttCommunicator) subscribeRequests() {
	topic := requestPrefix + "#"
	token := mc.client.Subscribe(topic, 0, func(c mqtt.Client, msg mqtt.Message) {
		defer errors.RecoverMiddleware()()

		responseTopic, response, ok := mc.dispatch(msg.Topic(), msg.Payload())
		if !ok {
			return
		}
		if err := mc.Publish(responseTopic, response); err != nil {
			logger.Error(fmt.Sprintf("Error enviando respuesta MQTT a %s: %v", responseTopic, err), "MQTT")
		}
	})

	if token.WaitTimeout(publishTimeout) && token.Error() != nil {
		logger.Error(fmt.Sprintf("Error subscribing to topic %s: %v", topic, token.Error()), "MQTT")
	}
}

func (mc *MqttCommunicator) match(topic string) (RequestHandler, bool) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	for _, r := range mc.routes {
		if topicMatch(r.pattern, topic) {
			return r.handler, true
		}
	}
	return nil, false
}

// dispatch runs the handler for a received request and builds its response.
// ok is false when the message is not a request this communicator answers.
func (mc *MqttCommunicator) dispatch(receivedTopic string, raw []byte) (string, MqttResponse, bool) {
	actualTopic := strings.TrimPrefix(receivedTopic, requestPrefix)

	handler, found := mc.match(actualTopic)
	if !found {
		return "", MqttResponse{}, false
	}

	var request MqttRequest
	if err := json.Unmarshal(raw, &request); err != nil {
		logger.Error(fmt.Sprintf("Error parsing MQTT request: %v", err), "MQTT")
		return "", MqttResponse{}, false
	}

	payloadMap := make(map[string]interface{})
	if pm, ok := request.Payload.(map[string]interface{}); ok {
		payloadMap = pm
	}
	payloadMap["_topic"] = actualTopic

	response := MqttResponse{CorrelationID: request.CorrelationID}
	data, err := handler(payloadMap)
	if err != nil {
		response.Error = err.Error()
	} else {
		response.Data = data
	}

	return fmt.Sprintf("%s%s/%s", responsePrefix, actualTopic, request.CorrelationID), response, true
}

// topicMatch checks if a received topic matches a pattern (with wildcards)
// '+' matches exactly one topic level
// '#' matches zero or more topic levels and must be the last character
func topicMatch(pattern, topic string) bool {
	patternParts := strings.Split(pattern, "/")
	topicParts := strings.Split(topic, "/")

	patternLen := len(patternParts)
	topicLen := len(topicParts)

	for i := 0; i < patternLen; i++ {
		if patternParts[i] == "#" {
			return true
		}

		if i >= topicLen {
			return false
		}

		if patternParts[i] == "+" {
			continue
		}

		if patternParts[i] != topicParts[i] {
			return false
		}
	}

	return patternLen == topicLen
}
