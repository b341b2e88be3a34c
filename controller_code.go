package consoleauth

import (
	"context"
	"fmt"
)

// SendVerificationCode requests an SMS verification code for tel. The call
// is refused locally, with no network traffic, when the number is empty,
// when a previous dispatch is still in flight, or when the resend cooldown
// is active. A successful dispatch starts the cooldown.
func (c *Controller) SendVerificationCode(ctx context.Context, tel string) (bool, error) {
	if c == nil || c.client == nil {
		return false, ErrControllerNotReady
	}

	if tel == "" {
		c.metrics.Inc(MetricCodeSendRejected)
		c.notify.Error(msgPhoneRequired)
		return false, ErrPhoneRequired
	}
	if c.sending.Load() {
		c.metrics.Inc(MetricCodeSendRejected)
		return false, ErrSendInFlight
	}
	if c.cooldown.Active() {
		c.metrics.Inc(MetricCodeSendRejected)
		return false, ErrSendCooldown
	}
	if !c.sending.CompareAndSwap(false, true) {
		c.metrics.Inc(MetricCodeSendRejected)
		return false, ErrSendInFlight
	}
	defer c.sending.Store(false)

	res, err := c.client.SendSMSCode(ctx, tel, c.config.Flow.SMSPurpose)
	if err != nil {
		c.metrics.Inc(MetricCodeSendFailure)
		c.emit(AuditEvent{EventType: "code_send_failure", Username: tel,
			Error: err.Error(), Metadata: map[string]string{"reason": "transport"}})
		c.notify.Error(msgCodeSendFailed)
		return false, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if res.Code != CodeOK {
		c.metrics.Inc(MetricCodeSendFailure)
		c.emit(AuditEvent{EventType: "code_send_failure", Username: tel,
			Metadata: map[string]string{"reason": "rejected", "code": fmt.Sprint(res.Code)}})
		c.notify.Error(serverMessage(res.Message, msgCodeSendFailed))
		return false, ErrRequestFailed
	}

	c.metrics.Inc(MetricCodeSendSuccess)
	c.emit(AuditEvent{EventType: "code_send_success", Username: tel, Success: true})
	c.notify.Success(serverMessage(res.Message, msgCodeSent))
	c.cooldown.Start(c.config.Flow.CooldownSeconds)
	return true, nil
}
