package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loyaltypro/internal/entity"
	"loyaltypro/internal/repo/persistent"
	"loyaltypro/pkg/culqi"
	"loyaltypro/pkg/logger"
	"loyaltypro/pkg/metrics"
	"loyaltypro/pkg/models"
	"loyaltypro/pkg/paypal"
)

var (
	ErrFreePlan    = errors.New("free plan does not require payment")
	ErrUnknownPlan = errors.New("unknown plan")
)

// Plan prices. Culqi charges in PEN minor units, PayPal in USD strings.
var (
	planPriceCulqi   = map[string]int{string(models.PlanBasic): 4900, string(models.PlanPro): 9900}
	planPricePayPal  = map[string]string{string(models.PlanBasic): "15.00", string(models.PlanPro): "29.00"}
	planAmountPayPal = map[string]int{string(models.PlanBasic): 1500, string(models.PlanPro): 2900}
)

const planDuration = 30 * 24 * time.Hour

type culqiClient interface {
	CreateCharge(ctx context.Context, req *culqi.ChargeRequest) (*culqi.Charge, error)
}

type paypalClient interface {
	CreateOrder(ctx context.Context, amount, currency string) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string) (*paypal.Order, error)
}

type PaymentUseCase interface {
	ChargeCulqi(ctx context.Context, tenantID, plan, email, tokenID string) (*entity.PaymentIntent, error)
	CreatePayPalOrder(ctx context.Context, tenantID, plan string) (*paypal.Order, error)
	CapturePayPalOrder(ctx context.Context, tenantID, orderID string) (*entity.PaymentIntent, error)
	Reconcile() error
}

type paymentUseCase struct {
	paymentRepo persistent.PaymentRepository
	tenantRepo  persistent.TenantRepository
	culqi       culqiClient
	paypal      paypalClient
	queueClient TaskPublisher
	logger      *logger.Logger
}

func NewPaymentUseCase(
	paymentRepo persistent.PaymentRepository,
	tenantRepo persistent.TenantRepository,
	culqiClient culqiClient,
	paypalClient paypalClient,
	queueClient TaskPublisher,
	logger *logger.Logger,
) PaymentUseCase {
	return &paymentUseCase{
		paymentRepo: paymentRepo,
		tenantRepo:  tenantRepo,
		culqi:       culqiClient,
		paypal:      paypalClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

func validatePlan(plan string) error {
	switch plan {
	case string(models.PlanFree):
		return ErrFreePlan
	case string(models.PlanBasic), string(models.PlanPro):
		return nil
	default:
		return ErrUnknownPlan
	}
}

// ChargeCulqi runs the full Culqi flow: charge the card token, record the
// intent as charged, then apply the plan. A crash between the two phases
// leaves a "charged" row for the reconciler to finish.
func (uc *paymentUseCase) ChargeCulqi(ctx context.Context, tenantID, plan, email, tokenID string) (*entity.PaymentIntent, error) {
	if err := validatePlan(plan); err != nil {
		return nil, err
	}
	amount := planPriceCulqi[plan]

	charge, err := uc.culqi.CreateCharge(ctx, &culqi.ChargeRequest{
		Amount:       amount,
		CurrencyCode: "PEN",
		Email:        email,
		SourceID:     tokenID,
		Description:  fmt.Sprintf("Plan %s", plan),
	})
	if err != nil {
		metrics.IncrementChargeProcessed("culqi", "failed")
		return nil, err
	}

	intent := &entity.PaymentIntent{
		TenantID:    tenantID,
		Provider:    "culqi",
		ProviderRef: charge.ID,
		Plan:        plan,
		Amount:      amount,
		Currency:    "PEN",
		Status:      string(models.PaymentCharged),
	}
	if err := uc.paymentRepo.CreateIntent(intent); err != nil {
		// The card was charged; log loudly so the intent can be replayed.
		uc.logger.Error("Charged culqi %s but failed to record intent: %v", charge.ID, err)
		return nil, fmt.Errorf("failed to record payment")
	}

	if err := uc.applyIntent(intent); err != nil {
		uc.logger.Error("Failed to apply culqi intent %s, reconciler will retry: %v", intent.ID, err)
		return intent, nil
	}
	return intent, nil
}

// CreatePayPalOrder creates a CAPTURE-intent order and records it as pending.
func (uc *paymentUseCase) CreatePayPalOrder(ctx context.Context, tenantID, plan string) (*paypal.Order, error) {
	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	order, err := uc.paypal.CreateOrder(ctx, planPricePayPal[plan], "USD")
	if err != nil {
		metrics.IncrementChargeProcessed("paypal", "failed")
		return nil, err
	}

	intent := &entity.PaymentIntent{
		TenantID:    tenantID,
		Provider:    "paypal",
		ProviderRef: order.ID,
		Plan:        plan,
		Amount:      planAmountPayPal[plan],
		Currency:    "USD",
		Status:      string(models.PaymentPending),
	}
	if err := uc.paymentRepo.CreateIntent(intent); err != nil {
		uc.logger.Error("Failed to record paypal intent for order %s: %v", order.ID, err)
		return nil, fmt.Errorf("failed to record payment")
	}
	return order, nil
}

// CapturePayPalOrder captures an approved order and applies the plan.
func (uc *paymentUseCase) CapturePayPalOrder(ctx context.Context, tenantID, orderID string) (*entity.PaymentIntent, error) {
	intent, err := uc.paymentRepo.GetByProviderRef("paypal", orderID)
	if err != nil {
		return nil, fmt.Errorf("unknown paypal order %s", orderID)
	}
	if intent.TenantID != tenantID {
		return nil, fmt.Errorf("unknown paypal order %s", orderID)
	}
	if intent.Status == string(models.PaymentApplied) {
		return intent, nil
	}

	order, err := uc.paypal.CaptureOrder(ctx, orderID)
	if err != nil {
		metrics.IncrementChargeProcessed("paypal", "failed")
		return nil, err
	}
	if order.Status != "COMPLETED" {
		metrics.IncrementChargeProcessed("paypal", "failed")
		return nil, fmt.Errorf("paypal capture not completed: %s", order.Status)
	}

	intent.Status = string(models.PaymentCharged)
	if err := uc.paymentRepo.UpdateStatus(intent.ID, string(models.PaymentCharged)); err != nil {
		uc.logger.Error("Captured paypal %s but failed to mark charged: %v", orderID, err)
	}

	if err := uc.applyIntent(intent); err != nil {
		uc.logger.Error("Failed to apply paypal intent %s, reconciler will retry: %v", intent.ID, err)
	}
	return intent, nil
}

// applyIntent upgrades the tenant plan and marks the intent applied. Only
// after both writes succeed does it announce the upgrade.
func (uc *paymentUseCase) applyIntent(intent *entity.PaymentIntent) error {
	expiresAt := time.Now().UTC().Add(planDuration)
	if err := uc.tenantRepo.UpdatePlan(intent.TenantID, intent.Plan, &expiresAt); err != nil {
		return fmt.Errorf("failed to upgrade tenant plan: %w", err)
	}
	if err := uc.paymentRepo.UpdateStatus(intent.ID, string(models.PaymentApplied)); err != nil {
		return fmt.Errorf("failed to mark intent applied: %w", err)
	}
	intent.Status = string(models.PaymentApplied)

	metrics.IncrementChargeProcessed(intent.Provider, "applied")

	if uc.queueClient != nil {
		if err := uc.queueClient.PublishNotificationTask(map[string]interface{}{
			"type":      "payment",
			"tenant_id": intent.TenantID,
			"plan":      intent.Plan,
			"provider":  intent.Provider,
			"priority":  8,
		}); err != nil {
			uc.logger.Warn("Failed to publish payment task: %v", err)
		}
	}
	return nil
}

// Reconcile finishes intents stuck in "charged": money was taken but the plan
// upgrade never landed, usually because the process died between the phases.
func (uc *paymentUseCase) Reconcile() error {
	stuck, err := uc.paymentRepo.ListStuckCharged(time.Now().UTC().Add(-5 * time.Minute))
	if err != nil {
		return err
	}
	for _, intent := range stuck {
		uc.logger.Warn("Reconciling stuck payment intent %s (%s, plan %s)", intent.ID, intent.Provider, intent.Plan)
		if err := uc.applyIntent(intent); err != nil {
			uc.logger.Error("Failed to reconcile intent %s: %v", intent.ID, err)
		}
	}
	return nil
}
