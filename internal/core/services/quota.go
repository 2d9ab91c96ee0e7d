package services

import "github.com/srgjo27/raffle_ticket/internal/core/domain"

func checkRequestCap(raffle *domain.Raffle, quantity int) error {
	if quantity > raffle.MaxTicketsPerUser {
		return &domain.QuotaError{Limit: raffle.MaxTicketsPerUser}
	}

	return nil
}

func checkBuyerQuota(raffle *domain.Raffle, held, quantity int) error {
	if held+quantity > raffle.MaxTicketsPerUser {
		return &domain.QuotaError{Limit: raffle.MaxTicketsPerUser, Held: held}
	}

	return nil
}
