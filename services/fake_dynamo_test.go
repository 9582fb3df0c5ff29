package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is a scripted DynamoAPI: each call records its input and
// pops the next scripted response. An empty script means success with
// an empty result.
type fakeDynamo struct {
	putInputs []*dynamodb.PutItemInput
	putErrs   []error

	getInputs  []*dynamodb.GetItemInput
	getOutputs []*dynamodb.GetItemOutput
	getErrs    []error

	queryInputs  []*dynamodb.QueryInput
	queryOutputs []*dynamodb.QueryOutput
	queryErrs    []error

	updateInputs []*dynamodb.UpdateItemInput
	updateAttrs  []map[string]types.AttributeValue
	updateErrs   []error
}

func condFailedErr() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func pop[T any](queue *[]T) T {
	var zero T
	if len(*queue) == 0 {
		return zero
	}
	head := (*queue)[0]
	*queue = (*queue)[1:]
	return head
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putInputs = append(f.putInputs, params)
	if err := pop(&f.putErrs); err != nil {
		return nil, err
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.getInputs = append(f.getInputs, params)
	if err := pop(&f.getErrs); err != nil {
		return nil, err
	}
	if out := pop(&f.getOutputs); out != nil {
		return out, nil
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamo) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryInputs = append(f.queryInputs, params)
	if err := pop(&f.queryErrs); err != nil {
		return nil, err
	}
	if out := pop(&f.queryOutputs); out != nil {
		return out, nil
	}
	return &dynamodb.QueryOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updateInputs = append(f.updateInputs, params)
	if err := pop(&f.updateErrs); err != nil {
		return nil, err
	}
	return &dynamodb.UpdateItemOutput{Attributes: pop(&f.updateAttrs)}, nil
}
