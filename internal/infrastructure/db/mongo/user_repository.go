package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/housewarrior/housewarrior/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// mongoUser is the storage shape. The role-conditional fields are omitempty so
// the document only carries the group matching the user's role.
type mongoUser struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	FullName          string             `bson:"full_name"`
	Email             string             `bson:"email"`
	PasswordHash      string             `bson:"password_hash"`
	ContactNumber     string             `bson:"contact_number"`
	Address           string             `bson:"address"`
	Role              string             `bson:"role"`
	ServiceCategories []string           `bson:"service_categories,omitempty"`
	Bio               string             `bson:"bio,omitempty"`
	Interests         string             `bson:"interests,omitempty"`
	Description       string             `bson:"description,omitempty"`
	CreatedAt         int64              `bson:"created_at"`
	UpdatedAt         int64              `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	res, err := r.coll.InsertOne(ctx, toDoc(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return fromDoc(&mu), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return fromDoc(&mu), nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"role": role}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, *fromDoc(&mu))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func toDoc(u *domain.User) mongoUser {
	return mongoUser{
		FullName:          u.FullName,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		ContactNumber:     u.ContactNumber,
		Address:           u.Address,
		Role:              u.Role,
		ServiceCategories: u.ServiceCategories,
		Bio:               u.Bio,
		Interests:         u.Interests,
		Description:       u.Description,
		CreatedAt:         u.CreatedAt.Unix(),
		UpdatedAt:         u.UpdatedAt.Unix(),
	}
}

func fromDoc(mu *mongoUser) *domain.User {
	return &domain.User{
		ID:                mu.ID.Hex(),
		FullName:          mu.FullName,
		Email:             mu.Email,
		PasswordHash:      mu.PasswordHash,
		ContactNumber:     mu.ContactNumber,
		Address:           mu.Address,
		Role:              mu.Role,
		ServiceCategories: mu.ServiceCategories,
		Bio:               mu.Bio,
		Interests:         mu.Interests,
		Description:       mu.Description,
		CreatedAt:         unixToTime(mu.CreatedAt),
		UpdatedAt:         unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
