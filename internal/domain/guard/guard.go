// Package guard holds the authorization predicates consulted before every
// lifecycle mutation. The functions are pure and switch over every Role so a
// new role cannot slip through unhandled.
package guard

import "github.com/polkiloo/gigmarket/internal/domain/model"

// CanCreateProject allows customers and admins to post work.
func CanCreateProject(actor model.Identity) bool {
	switch actor.Role {
	case model.RoleCustomer, model.RoleAdmin:
		return actor.UserID != ""
	case model.RoleFreelancer, model.RoleUnknown:
		return false
	}
	return false
}

// CanMutateProject allows the owner or an admin.
func CanMutateProject(actor model.Identity, project model.Project) bool {
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleCustomer, model.RoleFreelancer:
		return isOwner(actor, project)
	case model.RoleUnknown:
		return false
	}
	return false
}

// CanPublishProject allows the owner only.
func CanPublishProject(actor model.Identity, project model.Project) bool {
	switch actor.Role {
	case model.RoleCustomer, model.RoleFreelancer, model.RoleAdmin:
		return isOwner(actor, project)
	case model.RoleUnknown:
		return false
	}
	return false
}

// CanCurateProject gates the featured flag.
func CanCurateProject(actor model.Identity) bool {
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleCustomer, model.RoleFreelancer, model.RoleUnknown:
		return false
	}
	return false
}

// CanResolveBid allows the owner of the bid's project or an admin.
func CanResolveBid(actor model.Identity, bid model.Bid, project model.Project) bool {
	if bid.ProjectID != project.ID {
		return false
	}
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleCustomer, model.RoleFreelancer:
		return isOwner(actor, project)
	case model.RoleUnknown:
		return false
	}
	return false
}

// CanCreateBid allows freelancers only.
func CanCreateBid(actor model.Identity) bool {
	switch actor.Role {
	case model.RoleFreelancer:
		return actor.UserID != ""
	case model.RoleCustomer, model.RoleAdmin, model.RoleUnknown:
		return false
	}
	return false
}

// CanInitiatePayment allows the project owner only. Admins cannot pay on
// behalf of a customer.
func CanInitiatePayment(actor model.Identity, project model.Project) bool {
	switch actor.Role {
	case model.RoleCustomer, model.RoleFreelancer, model.RoleAdmin:
		return isOwner(actor, project)
	case model.RoleUnknown:
		return false
	}
	return false
}

// CanViewPayment allows the payer, the payee or an admin.
func CanViewPayment(actor model.Identity, payment model.Payment) bool {
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleCustomer, model.RoleFreelancer:
		return actor.UserID != "" && (actor.UserID == payment.CustomerID || actor.UserID == payment.FreelancerID)
	case model.RoleUnknown:
		return false
	}
	return false
}

func isOwner(actor model.Identity, project model.Project) bool {
	return actor.UserID != "" && actor.UserID == project.CustomerID
}
